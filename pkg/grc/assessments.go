package grc

import (
	"time"

	"github.com/grcledger/grcledger/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssessmentOfAdequacy scores control design adequacy per process.
// AdequacyScore and TotalScore are computed by the client and stored as-is.
type AssessmentOfAdequacy struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                  float64            `bson:"No" json:"No"`
	Process             string             `bson:"Process" json:"Process"`
	Date                time.Time          `bson:"Date" json:"Date"`
	DesignAdequacyScore float64            `bson:"DesignAdequacyScore" json:"DesignAdequacyScore"`
	SustainabilityScore float64            `bson:"SustainabilityScore" json:"SustainabilityScore"`
	ScalabilityScore    float64            `bson:"ScalabilityScore" json:"ScalabilityScore"`
	AdequacyScore       float64            `bson:"AdequacyScore" json:"AdequacyScore"`
	TotalScore          float64            `bson:"TotalScore" json:"TotalScore"`
	Scale               int                `bson:"Scale" json:"Scale"`
	Rating              string             `bson:"Rating" json:"Rating"`
}

// AdequacyDescriptor binds AssessmentOfAdequacy to the record protocol.
func AdequacyDescriptor() record.Descriptor[AssessmentOfAdequacy] {
	return record.Descriptor[AssessmentOfAdequacy]{
		Collection:   "AssessmentOfAdequacy",
		Path:         "assessmentofadequacy",
		KeyField:     "No",
		SearchFields: []string{"Process", "Rating"},
		KeyedPatch: func(a *AssessmentOfAdequacy) bson.M {
			return bson.M{
				"Process":             a.Process,
				"DesignAdequacyScore": a.DesignAdequacyScore,
				"SustainabilityScore": a.SustainabilityScore,
				"ScalabilityScore":    a.ScalabilityScore,
				"AdequacyScore":       a.AdequacyScore,
				"TotalScore":          a.TotalScore,
				"Scale":               a.Scale,
				"Rating":              a.Rating,
			}
		},
		ID:         func(a *AssessmentOfAdequacy) primitive.ObjectID { return a.ID },
		SetID:      func(a *AssessmentOfAdequacy, id primitive.ObjectID) { a.ID = id },
		Key:        func(a *AssessmentOfAdequacy) float64 { return a.No },
		Created:    func(a *AssessmentOfAdequacy) time.Time { return a.Date },
		SetCreated: func(a *AssessmentOfAdequacy, t time.Time) { a.Date = t },
	}
}

// AssessmentOfEffectiveness scores operating effectiveness per process.
// TotalScore is free text here, unlike the other two assessment types.
type AssessmentOfEffectiveness struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                  float64            `bson:"No" json:"No"`
	Process             string             `bson:"Process" json:"Process"`
	Date                time.Time          `bson:"Date" json:"Date"`
	DesignScore         float64            `bson:"DesignScore" json:"DesignScore"`
	OperatingScore      float64            `bson:"OperatingScore" json:"OperatingScore"`
	SustainabilityScore float64            `bson:"SustainabilityScore" json:"SustainabilityScore"`
	EffectivenessScore  float64            `bson:"EffectivenessScore" json:"EffectivenessScore"`
	TotalScore          string             `bson:"TotalScore" json:"TotalScore"`
	Scale               int                `bson:"Scale" json:"Scale"`
	Rating              string             `bson:"Rating" json:"Rating"`
}

// EffectivenessDescriptor binds AssessmentOfEffectiveness to the record protocol.
func EffectivenessDescriptor() record.Descriptor[AssessmentOfEffectiveness] {
	return record.Descriptor[AssessmentOfEffectiveness]{
		Collection:   "AssessmentOfEffectiveness",
		Path:         "assessmentofeffectiveness",
		KeyField:     "No",
		SearchFields: []string{"Process", "Rating"},
		KeyedPatch: func(a *AssessmentOfEffectiveness) bson.M {
			return bson.M{
				"Process":             a.Process,
				"DesignScore":         a.DesignScore,
				"OperatingScore":      a.OperatingScore,
				"SustainabilityScore": a.SustainabilityScore,
				"EffectivenessScore":  a.EffectivenessScore,
				"TotalScore":          a.TotalScore,
				"Scale":               a.Scale,
				"Rating":              a.Rating,
			}
		},
		ID:         func(a *AssessmentOfEffectiveness) primitive.ObjectID { return a.ID },
		SetID:      func(a *AssessmentOfEffectiveness, id primitive.ObjectID) { a.ID = id },
		Key:        func(a *AssessmentOfEffectiveness) float64 { return a.No },
		Created:    func(a *AssessmentOfEffectiveness) time.Time { return a.Date },
		SetCreated: func(a *AssessmentOfEffectiveness, t time.Time) { a.Date = t },
	}
}

// AssessmentOfEfficiency scores process efficiency.
type AssessmentOfEfficiency struct {
	ID                        primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                        float64            `bson:"No" json:"No"`
	Process                   string             `bson:"Process" json:"Process"`
	Date                      time.Time          `bson:"Date" json:"Date"`
	ObjectiveAchievementScore float64            `bson:"ObjectiveAchievementScore" json:"ObjectiveAchievementScore"`
	TimelinessThroughputScore float64            `bson:"TimelinessThroughputScore" json:"TimelinessThroughputScore"`
	ResourceConsumptionScore  float64            `bson:"ResourceConsumptionScore" json:"ResourceConsumptionScore"`
	EfficiencyScore           float64            `bson:"EfficiencyScore" json:"EfficiencyScore"`
	TotalScore                float64            `bson:"TotalScore" json:"TotalScore"`
	Scale                     int                `bson:"Scale" json:"Scale"`
	Rating                    string             `bson:"Rating" json:"Rating"`
}

// EfficiencyDescriptor binds AssessmentOfEfficiency to the record protocol.
func EfficiencyDescriptor() record.Descriptor[AssessmentOfEfficiency] {
	return record.Descriptor[AssessmentOfEfficiency]{
		Collection:   "AssessmentOfEfficiency",
		Path:         "assessmentofefficiency",
		KeyField:     "No",
		SearchFields: []string{"Process", "Rating"},
		KeyedPatch: func(a *AssessmentOfEfficiency) bson.M {
			return bson.M{
				"Process":                   a.Process,
				"ObjectiveAchievementScore": a.ObjectiveAchievementScore,
				"TimelinessThroughputScore": a.TimelinessThroughputScore,
				"ResourceConsumptionScore":  a.ResourceConsumptionScore,
				"EfficiencyScore":           a.EfficiencyScore,
				"TotalScore":                a.TotalScore,
				"Scale":                     a.Scale,
				"Rating":                    a.Rating,
			}
		},
		ID:         func(a *AssessmentOfEfficiency) primitive.ObjectID { return a.ID },
		SetID:      func(a *AssessmentOfEfficiency, id primitive.ObjectID) { a.ID = id },
		Key:        func(a *AssessmentOfEfficiency) float64 { return a.No },
		Created:    func(a *AssessmentOfEfficiency) time.Time { return a.Date },
		SetCreated: func(a *AssessmentOfEfficiency, t time.Time) { a.Date = t },
	}
}

// ProcessSeverity scores how severe a process failure would be.
// Scale runs 1 to 4: Low, Moderate, High, Critical.
type ProcessSeverity struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                 float64            `bson:"No" json:"No"`
	Process            string             `bson:"Process" json:"Process"`
	Date               time.Time          `bson:"Date" json:"Date"`
	ImpactScore        float64            `bson:"ImpactScore" json:"ImpactScore"`
	LikelihoodScore    float64            `bson:"LikelihoodScore" json:"LikelihoodScore"`
	DetectabilityScore float64            `bson:"DetectabilityScore" json:"DetectabilityScore"`
	SeverityScore      float64            `bson:"SeverityScore" json:"SeverityScore"`
	TotalScore         float64            `bson:"TotalScore" json:"TotalScore"`
	Scale              int                `bson:"Scale" json:"Scale"`
	Rating             string             `bson:"Rating" json:"Rating"`
}

// ProcessSeverityDescriptor binds ProcessSeverity to the record protocol.
func ProcessSeverityDescriptor() record.Descriptor[ProcessSeverity] {
	return record.Descriptor[ProcessSeverity]{
		Collection:   "ProcessSeverity",
		Path:         "processseverity",
		KeyField:     "No",
		SearchFields: []string{"Process", "Rating"},
		KeyedPatch: func(p *ProcessSeverity) bson.M {
			return bson.M{
				"Process":            p.Process,
				"ImpactScore":        p.ImpactScore,
				"LikelihoodScore":    p.LikelihoodScore,
				"DetectabilityScore": p.DetectabilityScore,
				"SeverityScore":      p.SeverityScore,
				"TotalScore":         p.TotalScore,
				"Scale":              p.Scale,
				"Rating":             p.Rating,
			}
		},
		ID:         func(p *ProcessSeverity) primitive.ObjectID { return p.ID },
		SetID:      func(p *ProcessSeverity, id primitive.ObjectID) { p.ID = id },
		Key:        func(p *ProcessSeverity) float64 { return p.No },
		Created:    func(p *ProcessSeverity) time.Time { return p.Date },
		SetCreated: func(p *ProcessSeverity, t time.Time) { p.Date = t },
	}
}
