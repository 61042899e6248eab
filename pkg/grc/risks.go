package grc

import (
	"time"

	"github.com/grcledger/grcledger/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RiskAssessmentInherentRisk rates a process risk before controls are
// considered. Inherent and residual assessments share a shape but live in
// separate collections.
type RiskAssessmentInherentRisk struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	Date                  time.Time          `bson:"Date" json:"Date"`
	No                    float64            `bson:"No" json:"No"`
	Process               string             `bson:"Process" json:"Process"`
	RiskType              string             `bson:"Risk Type" json:"Risk Type"`
	RiskDescription       string             `bson:"Risk Description" json:"Risk Description"`
	SeverityImpact        string             `bson:"Severity/ Impact" json:"Severity/ Impact"`
	ProbabilityLikelihood string             `bson:"Probability/ Likelihood" json:"Probability/ Likelihood"`
	Classification        string             `bson:"Classification" json:"Classification"`
}

// InherentRiskDescriptor binds RiskAssessmentInherentRisk to the record
// protocol. The double space in the collection name is present in the live
// database.
func InherentRiskDescriptor() record.Descriptor[RiskAssessmentInherentRisk] {
	return record.Descriptor[RiskAssessmentInherentRisk]{
		Collection: "Risk Assessment  (Inherent Risk)",
		Path:       "riskassessmentinherentrisks",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Risk Type",
			"Risk Description",
			"Severity/ Impact",
			"Probability/ Likelihood",
			"Classification",
		},
		KeyedPatch: func(r *RiskAssessmentInherentRisk) bson.M {
			return bson.M{
				"Process":                 r.Process,
				"Risk Type":               r.RiskType,
				"Risk Description":        r.RiskDescription,
				"Severity/ Impact":        r.SeverityImpact,
				"Probability/ Likelihood": r.ProbabilityLikelihood,
				"Classification":          r.Classification,
			}
		},
		ID:         func(r *RiskAssessmentInherentRisk) primitive.ObjectID { return r.ID },
		SetID:      func(r *RiskAssessmentInherentRisk, id primitive.ObjectID) { r.ID = id },
		Key:        func(r *RiskAssessmentInherentRisk) float64 { return r.No },
		Created:    func(r *RiskAssessmentInherentRisk) time.Time { return r.Date },
		SetCreated: func(r *RiskAssessmentInherentRisk, t time.Time) { r.Date = t },
	}
}

// RiskAssessmentResidualRisk rates the risk remaining after controls.
type RiskAssessmentResidualRisk struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	Date                  time.Time          `bson:"Date" json:"Date"`
	No                    float64            `bson:"No" json:"No"`
	Process               string             `bson:"Process" json:"Process"`
	RiskType              string             `bson:"Risk Type" json:"Risk Type"`
	RiskDescription       string             `bson:"Risk Description" json:"Risk Description"`
	SeverityImpact        string             `bson:"Severity/ Impact" json:"Severity/ Impact"`
	ProbabilityLikelihood string             `bson:"Probability/ Likelihood" json:"Probability/ Likelihood"`
	Classification        string             `bson:"Classification" json:"Classification"`
}

// ResidualRiskDescriptor binds RiskAssessmentResidualRisk to the record protocol.
func ResidualRiskDescriptor() record.Descriptor[RiskAssessmentResidualRisk] {
	return record.Descriptor[RiskAssessmentResidualRisk]{
		Collection: "Risk Assessment (Residual Risk)",
		Path:       "riskassessmentresidualrisks",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Risk Type",
			"Risk Description",
			"Severity/ Impact",
			"Probability/ Likelihood",
			"Classification",
		},
		KeyedPatch: func(r *RiskAssessmentResidualRisk) bson.M {
			return bson.M{
				"Process":                 r.Process,
				"Risk Type":               r.RiskType,
				"Risk Description":        r.RiskDescription,
				"Severity/ Impact":        r.SeverityImpact,
				"Probability/ Likelihood": r.ProbabilityLikelihood,
				"Classification":          r.Classification,
			}
		},
		ID:         func(r *RiskAssessmentResidualRisk) primitive.ObjectID { return r.ID },
		SetID:      func(r *RiskAssessmentResidualRisk, id primitive.ObjectID) { r.ID = id },
		Key:        func(r *RiskAssessmentResidualRisk) float64 { return r.No },
		Created:    func(r *RiskAssessmentResidualRisk) time.Time { return r.Date },
		SetCreated: func(r *RiskAssessmentResidualRisk, t time.Time) { r.Date = t },
	}
}

// RiskResponse records the chosen response for an assessed risk.
type RiskResponse struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	Date               time.Time          `bson:"Date" json:"Date"`
	No                 float64            `bson:"No" json:"No"`
	Process            string             `bson:"Process" json:"Process"`
	TypeOfRiskResponse string             `bson:"Type of Risk Response" json:"Type of Risk Response"`
}

// RiskResponseDescriptor binds RiskResponse to the record protocol.
func RiskResponseDescriptor() record.Descriptor[RiskResponse] {
	return record.Descriptor[RiskResponse]{
		Collection:   "Risk Responses",
		Path:         "riskresponses",
		KeyField:     "No",
		SearchFields: []string{"Process", "Type of Risk Response"},
		KeyedPatch: func(r *RiskResponse) bson.M {
			return bson.M{
				"Process":               r.Process,
				"Type of Risk Response": r.TypeOfRiskResponse,
			}
		},
		ID:         func(r *RiskResponse) primitive.ObjectID { return r.ID },
		SetID:      func(r *RiskResponse, id primitive.ObjectID) { r.ID = id },
		Key:        func(r *RiskResponse) float64 { return r.No },
		Created:    func(r *RiskResponse) time.Time { return r.Date },
		SetCreated: func(r *RiskResponse, t time.Time) { r.Date = t },
	}
}
