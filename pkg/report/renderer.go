// Package report renders assessment exports. The in-tree renderer produces
// the self-contained Chart.js document; converting it to PDF is left to an
// external browser pipeline.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/grcledger/grcledger/pkg/grc"
)

// Document is a rendered export ready to stream to the client.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Renderer turns assessment records into an export document.
type Renderer interface {
	Render(items []grc.AssessmentOfAdequacy) (Document, error)
}

// maxScore is the scale ceiling every chart compares actual scores against.
const maxScore = 10

// ChartRenderer renders the design-adequacy chart report: one chart per
// page, actual scores against the scale ceiling.
type ChartRenderer struct {
	tmpl *template.Template
}

// NewChartRenderer creates the Chart.js report renderer.
func NewChartRenderer() (*ChartRenderer, error) {
	tmpl, err := template.New("assessment").Parse(chartReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("report: parsing chart template: %w", err)
	}
	return &ChartRenderer{tmpl: tmpl}, nil
}

type chartData struct {
	Labels       template.JS
	LabelsWithNo template.JS
	Scores       template.JS
	MaxScores    template.JS
}

// Render builds the report document for the given records.
func (r *ChartRenderer) Render(items []grc.AssessmentOfAdequacy) (Document, error) {
	labels := make([]string, len(items))
	labelsWithNo := make([]string, len(items))
	scores := make([]float64, len(items))
	maxScores := make([]int, len(items))
	for i, item := range items {
		labels[i] = item.Process
		labelsWithNo[i] = fmt.Sprintf("%v - %s", item.No, item.Process)
		scores[i] = item.DesignAdequacyScore
		maxScores[i] = maxScore
	}

	data := chartData{
		Labels:       jsonJS(labels),
		LabelsWithNo: jsonJS(labelsWithNo),
		Scores:       jsonJS(scores),
		MaxScores:    jsonJS(maxScores),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return Document{}, fmt.Errorf("report: rendering chart template: %w", err)
	}
	return Document{
		Data:        buf.Bytes(),
		ContentType: "text/html; charset=utf-8",
		Filename:    "AssessmentOfAdequacy.html",
	}, nil
}

// jsonJS serializes v for embedding in the report's script block. The inputs
// are service-controlled slices, so marshaling cannot fail.
func jsonJS(v interface{}) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("[]")
	}
	return template.JS(b)
}

const chartReportTemplate = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Assessment Of Adequacy - Charts</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
  <style>
    @page { size: A4; margin: 15mm; }
    body { font-family: Arial, Helvetica, sans-serif; margin: 0; padding: 0; }
    .page {
      width: 100%;
      height: 100%;
      page-break-after: always;
      display: flex;
      flex-direction: column;
      align-items: center;
      justify-content: center;
      padding: 10mm;
      box-sizing: border-box;
    }
    h2 { margin: 0; padding: 0; }
    .chart-wrapper { width: 100%; max-width: 1100px; }
    canvas { width: 100% !important; height: 520px !important; background: #fff; }
    .small-canvas { height: 420px !important; }
  </style>
</head>
<body>

  <div class="page">
    <h2>Design Adequacy &mdash; Horizontal Bar (Actual vs Total)</h2>
    <div class="chart-wrapper"><canvas id="horizontalBar"></canvas></div>
  </div>

  <div class="page">
    <h2>Design Adequacy &mdash; Vertical Bar (Actual vs Total)</h2>
    <div class="chart-wrapper"><canvas id="verticalBar"></canvas></div>
  </div>

  <div class="page">
    <h2>Design Adequacy &mdash; Radar (Actual vs Total)</h2>
    <div class="chart-wrapper"><canvas id="radarChart" class="small-canvas"></canvas></div>
  </div>

  <div class="page">
    <h2>Design Adequacy &mdash; Line Chart (with total = 10)</h2>
    <div class="chart-wrapper"><canvas id="lineChart"></canvas></div>
  </div>

  <div class="page">
    <h2>Design Adequacy &mdash; Pie</h2>
    <div class="chart-wrapper"><canvas id="pieChart" class="small-canvas"></canvas></div>
  </div>

  <div class="page">
    <h2>Design Adequacy &mdash; Donut</h2>
    <div class="chart-wrapper"><canvas id="donutChart" class="small-canvas"></canvas></div>
  </div>

<script>
  const labelsWithNo = {{.LabelsWithNo}};
  const labels = {{.Labels}};
  const scores = {{.Scores}};
  const maxScores = {{.MaxScores}};

  const colorBlue = 'rgba(54,162,235,0.85)';
  const colorBlueBorder = 'rgba(54,162,235,1)';
  const colorOrange = 'rgba(255,159,64,0.85)';
  const colorOrangeBorder = 'rgba(255,159,64,1)';

  function generatePalette(n, alpha) {
    if (alpha === undefined) alpha = 0.85;
    const colors = [];
    const borders = [];
    for (let i = 0; i < n; i++) {
      const hue = Math.round((i * 360) / n);
      colors.push('hsla(' + hue + ', 70%, 50%, ' + alpha + ')');
      borders.push('hsla(' + hue + ', 70%, 40%, 1)');
    }
    return { colors: colors, borders: borders };
  }

  const palette = generatePalette(labelsWithNo.length);

  const compareDatasets = [
    { label: 'Actual', data: scores, backgroundColor: colorBlue, borderColor: colorBlueBorder, borderWidth: 1 },
    { label: 'Total', data: maxScores, backgroundColor: colorOrange, borderColor: colorOrangeBorder, borderWidth: 1 }
  ];

  new Chart(document.getElementById('horizontalBar'), {
    type: 'bar',
    data: { labels: labels, datasets: compareDatasets },
    options: { indexAxis: 'y', responsive: true, animation: false, scales: { x: { beginAtZero: true, max: 10 } } }
  });

  new Chart(document.getElementById('verticalBar'), {
    type: 'bar',
    data: { labels: labels, datasets: compareDatasets },
    options: { responsive: true, animation: false, scales: { y: { beginAtZero: true, max: 10 } } }
  });

  new Chart(document.getElementById('radarChart'), {
    type: 'radar',
    data: { labels: labels, datasets: compareDatasets },
    options: { responsive: true, animation: false, scales: { r: { beginAtZero: true, max: 10 } } }
  });

  new Chart(document.getElementById('lineChart'), {
    type: 'line',
    data: {
      labels: labels,
      datasets: [
        { label: 'Actual', data: scores, borderColor: colorBlueBorder, backgroundColor: colorBlue, fill: false },
        { label: 'Total', data: maxScores, borderColor: colorOrangeBorder, backgroundColor: colorOrange, fill: false, pointRadius: 0 }
      ]
    },
    options: { responsive: true, animation: false, scales: { y: { beginAtZero: true, max: 10 } } }
  });

  new Chart(document.getElementById('pieChart'), {
    type: 'pie',
    data: { labels: labelsWithNo, datasets: [{ data: scores, backgroundColor: palette.colors, borderColor: palette.borders }] },
    options: { responsive: true, animation: false }
  });

  new Chart(document.getElementById('donutChart'), {
    type: 'doughnut',
    data: { labels: labelsWithNo, datasets: [{ data: scores, backgroundColor: palette.colors, borderColor: palette.borders }] },
    options: { responsive: true, animation: false }
  });
</script>
</body>
</html>
`
