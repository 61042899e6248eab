package grc

import (
	"time"

	"github.com/grcledger/grcledger/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ControlActivity describes one control applied to a process.
type ControlActivity struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	Date                  time.Time          `bson:"Date" json:"Date"`
	No                    float64            `bson:"No" json:"No"`
	Process               string             `bson:"Process" json:"Process"`
	ControlObjectives     string             `bson:"Control Objectives" json:"Control Objectives"`
	ControlRef            string             `bson:"Control Ref" json:"Control Ref"`
	ControlDefinition     string             `bson:"Control Definition" json:"Control Definition"`
	ControlDescription    string             `bson:"Control Description" json:"Control Description"`
	ControlResponsibility string             `bson:"Control Responsibility" json:"Control Responsibility"`
	KeyControl            string             `bson:"Key Control" json:"Key Control"`
	ZeroTolerance         string             `bson:"Zero Tolerance" json:"Zero Tolerance"`
}

// ControlActivityDescriptor binds ControlActivity to the record protocol.
func ControlActivityDescriptor() record.Descriptor[ControlActivity] {
	return record.Descriptor[ControlActivity]{
		Collection: "Control Activities",
		Path:       "controlactivities",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Control Objectives",
			"Control Ref",
			"Control Definition",
			"Control Description",
			"Control Responsibility",
		},
		KeyedPatch: func(c *ControlActivity) bson.M {
			return bson.M{
				"Process":                c.Process,
				"Control Objectives":     c.ControlObjectives,
				"Control Ref":            c.ControlRef,
				"Control Definition":     c.ControlDefinition,
				"Control Description":    c.ControlDescription,
				"Control Responsibility": c.ControlResponsibility,
				"Key Control":            c.KeyControl,
				"Zero Tolerance":         c.ZeroTolerance,
			}
		},
		ID:         func(c *ControlActivity) primitive.ObjectID { return c.ID },
		SetID:      func(c *ControlActivity, id primitive.ObjectID) { c.ID = id },
		Key:        func(c *ControlActivity) float64 { return c.No },
		Created:    func(c *ControlActivity) time.Time { return c.Date },
		SetCreated: func(c *ControlActivity, t time.Time) { c.Date = t },
	}
}

// ControlAssessment classifies how a control operates.
type ControlAssessment struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                    float64            `bson:"No" json:"No"`
	Process               string             `bson:"Process" json:"Process"`
	LevelOfResponsibility string             `bson:"Level of Responsibility-Operating Level (Entity / Activity)" json:"Level of Responsibility-Operating Level (Entity / Activity)"`
	CosoPrincipleNumber   string             `bson:"COSO Principle #" json:"COSO Principle #"`
	OperationalApproach   string             `bson:"Operational Approach (Automated / Manual)" json:"Operational Approach (Automated / Manual)"`
	OperationalFrequency  string             `bson:"Operational Frequency" json:"Operational Frequency"`
	ControlClassification string             `bson:"Control Classification (Preventive / Detective / Corrective)" json:"Control Classification (Preventive / Detective / Corrective)"`
}

// ControlAssessmentDescriptor binds ControlAssessment to the record protocol.
func ControlAssessmentDescriptor() record.Descriptor[ControlAssessment] {
	return record.Descriptor[ControlAssessment]{
		Collection: "Control Assessment",
		Path:       "controlassessments",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Level of Responsibility-Operating Level (Entity / Activity)",
			"COSO Principle #",
			"Operational Approach (Automated / Manual)",
			"Operational Frequency",
			"Control Classification (Preventive / Detective / Corrective)",
		},
		KeyedPatch: func(c *ControlAssessment) bson.M {
			return bson.M{
				"Process": c.Process,
				"Level of Responsibility-Operating Level (Entity / Activity)":  c.LevelOfResponsibility,
				"COSO Principle #": c.CosoPrincipleNumber,
				"Operational Approach (Automated / Manual)":                    c.OperationalApproach,
				"Operational Frequency":                                        c.OperationalFrequency,
				"Control Classification (Preventive / Detective / Corrective)": c.ControlClassification,
			}
		},
		ID:         func(c *ControlAssessment) primitive.ObjectID { return c.ID },
		SetID:      func(c *ControlAssessment, id primitive.ObjectID) { c.ID = id },
		Key:        func(c *ControlAssessment) float64 { return c.No },
		Created:    func(c *ControlAssessment) time.Time { return time.Time{} },
		SetCreated: func(c *ControlAssessment, t time.Time) {},
	}
}

// InternalAuditTest records the audit test planned for a process.
type InternalAuditTest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No         float64            `bson:"No" json:"No"`
	Process    string             `bson:"Process" json:"Process"`
	Check      string             `bson:"Check" json:"Check"`
	TestName   string             `bson:"Internal Audit Test" json:"Internal Audit Test"`
	SampleSize string             `bson:"Sample Size" json:"Sample Size"`
}

// InternalAuditTestDescriptor binds InternalAuditTest to the record protocol.
func InternalAuditTestDescriptor() record.Descriptor[InternalAuditTest] {
	return record.Descriptor[InternalAuditTest]{
		Collection:   "Internal Audit Test",
		Path:         "internalaudittests",
		KeyField:     "No",
		SearchFields: []string{"Process", "Check", "Internal Audit Test", "Sample Size"},
		KeyedPatch: func(t *InternalAuditTest) bson.M {
			return bson.M{
				"Process":             t.Process,
				"Check":               t.Check,
				"Internal Audit Test": t.TestName,
				"Sample Size":         t.SampleSize,
			}
		},
		ID:         func(t *InternalAuditTest) primitive.ObjectID { return t.ID },
		SetID:      func(t *InternalAuditTest, id primitive.ObjectID) { t.ID = id },
		Key:        func(t *InternalAuditTest) float64 { return t.No },
		Created:    func(t *InternalAuditTest) time.Time { return time.Time{} },
		SetCreated: func(t *InternalAuditTest, at time.Time) {},
	}
}

// Sox ties a process to its SOX control activity.
type Sox struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	Date               time.Time          `bson:"Date" json:"Date"`
	No                 float64            `bson:"No" json:"No"`
	Process            string             `bson:"Process" json:"Process"`
	SoxControlActivity string             `bson:"SOX Control Activity" json:"SOX Control Activity"`
}

// SoxDescriptor binds Sox to the record protocol.
func SoxDescriptor() record.Descriptor[Sox] {
	return record.Descriptor[Sox]{
		Collection:   "SOX",
		Path:         "sox",
		KeyField:     "No",
		SearchFields: []string{"Process", "SOX Control Activity"},
		KeyedPatch: func(s *Sox) bson.M {
			return bson.M{
				"Process":              s.Process,
				"SOX Control Activity": s.SoxControlActivity,
			}
		},
		ID:         func(s *Sox) primitive.ObjectID { return s.ID },
		SetID:      func(s *Sox, id primitive.ObjectID) { s.ID = id },
		Key:        func(s *Sox) float64 { return s.No },
		Created:    func(s *Sox) time.Time { return s.Date },
		SetCreated: func(s *Sox, t time.Time) { s.Date = t },
	}
}
