package grc

import (
	"time"

	"github.com/grcledger/grcledger/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FinancialStatementAssertion maps a process to the financial statement
// assertions its controls support.
type FinancialStatementAssertion struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	Date                 time.Time          `bson:"Date" json:"Date"`
	No                   float64            `bson:"No" json:"No"`
	Process              string             `bson:"Process" json:"Process"`
	ICOFR                string             `bson:"Internal Control Over Financial Reporting?" json:"Internal Control Over Financial Reporting?"`
	Occurrence           string             `bson:"Occurrence" json:"Occurrence"`
	Completeness         string             `bson:"Completeness" json:"Completeness"`
	Accuracy             string             `bson:"Accuracy" json:"Accuracy"`
	Authorization        string             `bson:"Authorization" json:"Authorization"`
	Cutoff               string             `bson:"Cutoff" json:"Cutoff"`
	Classification       string             `bson:"Classification and Understandability" json:"Classification and Understandability"`
	Existence            string             `bson:"Existence" json:"Existence"`
	RightsAndObligations string             `bson:"Rights and Obligations" json:"Rights and Obligations"`
	Valuation            string             `bson:"Valuation and Allocation" json:"Valuation and Allocation"`
	Presentation         string             `bson:"Presentation / Disclosure" json:"Presentation / Disclosure"`
}

// AssertionDescriptor binds FinancialStatementAssertion to the record
// protocol. This resource pages at a fixed size; the caller cannot widen it.
func AssertionDescriptor() record.Descriptor[FinancialStatementAssertion] {
	return record.Descriptor[FinancialStatementAssertion]{
		Collection: "Financial Statement Assertions",
		Path:       "financialstatementassertions",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Internal Control Over Financial Reporting?",
			"Occurrence",
			"Completeness",
			"Accuracy",
			"Authorization",
			"Cutoff",
			"Classification and Understandability",
			"Existence",
			"Rights and Obligations",
			"Valuation and Allocation",
			"Presentation / Disclosure",
		},
		KeyedPatch: func(a *FinancialStatementAssertion) bson.M {
			return bson.M{
				"Process": a.Process,
				"Internal Control Over Financial Reporting?": a.ICOFR,
				"Occurrence":                           a.Occurrence,
				"Completeness":                         a.Completeness,
				"Accuracy":                             a.Accuracy,
				"Authorization":                        a.Authorization,
				"Cutoff":                               a.Cutoff,
				"Classification and Understandability": a.Classification,
				"Existence":                            a.Existence,
				"Rights and Obligations":               a.RightsAndObligations,
				"Valuation and Allocation":             a.Valuation,
				"Presentation / Disclosure":            a.Presentation,
			}
		},
		ID:         func(a *FinancialStatementAssertion) primitive.ObjectID { return a.ID },
		SetID:      func(a *FinancialStatementAssertion, id primitive.ObjectID) { a.ID = id },
		Key:        func(a *FinancialStatementAssertion) float64 { return a.No },
		Created:    func(a *FinancialStatementAssertion) time.Time { return a.Date },
		SetCreated: func(a *FinancialStatementAssertion, t time.Time) { a.Date = t },
		Paging:     record.PageSizing{Fixed: 10},
	}
}

// GrcExceptionLog records adequacy or effectiveness exceptions raised
// against a process.
type GrcExceptionLog struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No               float64            `bson:"No" json:"No"`
	Process          string             `bson:"Process" json:"Process"`
	GrcAdequacy      string             `bson:"GRC Adequacy" json:"GRC Adequacy"`
	GrcEffectiveness string             `bson:"GRC Effectiveness" json:"GRC Effectiveness"`
	Explanation      string             `bson:"Explanation" json:"Explanation"`
}

// ExceptionLogDescriptor binds GrcExceptionLog to the record protocol.
func ExceptionLogDescriptor() record.Descriptor[GrcExceptionLog] {
	return record.Descriptor[GrcExceptionLog]{
		Collection:   "GRC Exception Log",
		Path:         "grcexceptionlogs",
		KeyField:     "No",
		SearchFields: []string{"Process", "GRC Adequacy", "GRC Effectiveness", "Explanation"},
		KeyedPatch: func(l *GrcExceptionLog) bson.M {
			return bson.M{
				"Process":           l.Process,
				"GRC Adequacy":      l.GrcAdequacy,
				"GRC Effectiveness": l.GrcEffectiveness,
				"Explanation":       l.Explanation,
			}
		},
		ID:         func(l *GrcExceptionLog) primitive.ObjectID { return l.ID },
		SetID:      func(l *GrcExceptionLog, id primitive.ObjectID) { l.ID = id },
		Key:        func(l *GrcExceptionLog) float64 { return l.No },
		Created:    func(l *GrcExceptionLog) time.Time { return time.Time{} },
		SetCreated: func(l *GrcExceptionLog, t time.Time) {},
	}
}

// Ownership places a process in the organization: who runs it, where, and
// over which products.
type Ownership struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	Date            time.Time          `bson:"Date" json:"Date"`
	No              float64            `bson:"No" json:"No"`
	MainProcess     string             `bson:"Main Process" json:"Main Process"`
	Activity        string             `bson:"Activity" json:"Activity"`
	Process         string             `bson:"Process" json:"Process"`
	ProcessStage    string             `bson:"Process Stage" json:"Process Stage"`
	Functions       string             `bson:"Functions" json:"Functions"`
	ClientSegment   string             `bson:"Client Segment and/or Functional Segment" json:"Client Segment and/or Functional Segment"`
	OperationalUnit string             `bson:"Operational Unit" json:"Operational Unit"`
	Division        string             `bson:"Division" json:"Division"`
	Entity          string             `bson:"Entity" json:"Entity"`
	UnitDepartment  string             `bson:"Unit / Department" json:"Unit / Department"`
	ProductClass    string             `bson:"Product Class" json:"Product Class"`
	ProductName     string             `bson:"Product Name" json:"Product Name"`
}

// OwnershipDescriptor binds Ownership to the record protocol.
func OwnershipDescriptor() record.Descriptor[Ownership] {
	return record.Descriptor[Ownership]{
		Collection: "Ownership",
		Path:       "ownerships",
		KeyField:   "No",
		SearchFields: []string{
			"Main Process",
			"Activity",
			"Process",
			"Process Stage",
			"Functions",
			"Operational Unit",
			"Division",
			"Entity",
			"Unit / Department",
			"Product Class",
			"Product Name",
		},
		KeyedPatch: func(o *Ownership) bson.M {
			return bson.M{
				"Main Process":  o.MainProcess,
				"Activity":      o.Activity,
				"Process":       o.Process,
				"Process Stage": o.ProcessStage,
				"Functions":     o.Functions,
				"Client Segment and/or Functional Segment": o.ClientSegment,
				"Operational Unit":  o.OperationalUnit,
				"Division":          o.Division,
				"Entity":            o.Entity,
				"Unit / Department": o.UnitDepartment,
				"Product Class":     o.ProductClass,
				"Product Name":      o.ProductName,
			}
		},
		ID:         func(o *Ownership) primitive.ObjectID { return o.ID },
		SetID:      func(o *Ownership, id primitive.ObjectID) { o.ID = id },
		Key:        func(o *Ownership) float64 { return o.No },
		Created:    func(o *Ownership) time.Time { return o.Date },
		SetCreated: func(o *Ownership, t time.Time) { o.Date = t },
	}
}
