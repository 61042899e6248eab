package grc

import (
	"time"

	"github.com/grcledger/grcledger/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Process is the top-level catalog entry the other resources reference by
// name. It carries no creation date.
type Process struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                    float64            `bson:"No" json:"No"`
	ProcessName           string             `bson:"Process" json:"Process"`
	ProcessDescription    string             `bson:"Process Description" json:"Process Description"`
	ProcessObjectives     string             `bson:"Process Objectives" json:"Process Objectives"`
	ProcessSeverityLevels string             `bson:"Process Severity Levels" json:"Process Severity Levels"`
}

// ProcessDescriptor binds Process to the record protocol.
func ProcessDescriptor() record.Descriptor[Process] {
	return record.Descriptor[Process]{
		Collection: "Process",
		Path:       "processes",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Process Description",
			"Process Objectives",
			"Process Severity Levels",
		},
		KeyedPatch: func(p *Process) bson.M {
			return bson.M{
				"Process":                 p.ProcessName,
				"Process Description":     p.ProcessDescription,
				"Process Objectives":      p.ProcessObjectives,
				"Process Severity Levels": p.ProcessSeverityLevels,
			}
		},
		ID:         func(p *Process) primitive.ObjectID { return p.ID },
		SetID:      func(p *Process, id primitive.ObjectID) { p.ID = id },
		Key:        func(p *Process) float64 { return p.No },
		Created:    func(p *Process) time.Time { return time.Time{} },
		SetCreated: func(p *Process, t time.Time) {},
	}
}
