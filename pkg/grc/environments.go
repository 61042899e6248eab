package grc

import (
	"time"

	"github.com/grcledger/grcledger/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CosoControlEnvironment captures the COSO control environment review of a
// process. None of the environment resources carry a creation date.
type CosoControlEnvironment struct {
	ID                        primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                        float64            `bson:"No" json:"No"`
	Process                   string             `bson:"Process" json:"Process"`
	IntegrityAndEthicalValues string             `bson:"Integrity & Ethical Values" json:"Integrity & Ethical Values"`
	BoardOversight            string             `bson:"Board Oversight" json:"Board Oversight"`
	OrganizationalStructure   string             `bson:"Organizational Structure" json:"Organizational Structure"`
	CommitmentToCompetence    string             `bson:"Commitment to Competence" json:"Commitment to Competence"`
	ManagementPhilosophy      string             `bson:"Management Philosophy" json:"Management Philosophy"`
}

// CosoEnvironmentDescriptor binds CosoControlEnvironment to the record protocol.
func CosoEnvironmentDescriptor() record.Descriptor[CosoControlEnvironment] {
	return record.Descriptor[CosoControlEnvironment]{
		Collection: "COSO-Control Environment",
		Path:       "cosocontrolenvironments",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Integrity & Ethical Values",
			"Board Oversight",
			"Organizational Structure",
			"Commitment to Competence",
			"Management Philosophy",
		},
		KeyedPatch: func(c *CosoControlEnvironment) bson.M {
			return bson.M{
				"Process":                    c.Process,
				"Integrity & Ethical Values": c.IntegrityAndEthicalValues,
				"Board Oversight":            c.BoardOversight,
				"Organizational Structure":   c.OrganizationalStructure,
				"Commitment to Competence":   c.CommitmentToCompetence,
				"Management Philosophy":      c.ManagementPhilosophy,
			}
		},
		ID:         func(c *CosoControlEnvironment) primitive.ObjectID { return c.ID },
		SetID:      func(c *CosoControlEnvironment, id primitive.ObjectID) { c.ID = id },
		Key:        func(c *CosoControlEnvironment) float64 { return c.No },
		Created:    func(c *CosoControlEnvironment) time.Time { return time.Time{} },
		SetCreated: func(c *CosoControlEnvironment, t time.Time) {},
	}
}

// IntosaiIfacControlEnvironment captures the INTOSAI/IFAC control environment
// review. The collection name and the curly apostrophes in several field
// names are load-bearing; they match the documents already in the store.
type IntosaiIfacControlEnvironment struct {
	ID                        primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                        float64            `bson:"No" json:"No"`
	Process                   string             `bson:"Process" json:"Process"`
	IntegrityAndEthicalValues string             `bson:"Integrity and Ethical Values" json:"Integrity and Ethical Values"`
	CommitmentToCompetence    string             `bson:"Commitment to Competence" json:"Commitment to Competence"`
	ManagementsPhilosophy     string             `bson:"Management’s Philosophy and Operating Style" json:"Management’s Philosophy and Operating Style"`
	OrganizationalStructure   string             `bson:"Organizational Structure" json:"Organizational Structure"`
	AssignmentOfAuthority     string             `bson:"Assignment of Authority and Responsibility" json:"Assignment of Authority and Responsibility"`
	HumanResourcePolicies     string             `bson:"Human Resource Policies and Practices" json:"Human Resource Policies and Practices"`
	BoardParticipation        string             `bson:"Board of Directors’ or Audit Committee’s Participation" json:"Board of Directors’ or Audit Committee’s Participation"`
	ManagementControlMethods  string             `bson:"Management Control Methods" json:"Management Control Methods"`
	ExternalInfluences        string             `bson:"External Influences" json:"External Influences"`
	CommitmentToControl       string             `bson:"Management’s Commitment to Internal Control" json:"Management’s Commitment to Internal Control"`
	CommunicationOfValues     string             `bson:"Communication and Enforcement of Integrity and Ethical Values" json:"Communication and Enforcement of Integrity and Ethical Values"`
	EmployeeAwareness         string             `bson:"Employee Awareness and Understanding" json:"Employee Awareness and Understanding"`
	Accountability            string             `bson:"Accountability and Performance Measurement" json:"Accountability and Performance Measurement"`
	CommitmentToTransparency  string             `bson:"Commitment to Transparency and Openness" json:"Commitment to Transparency and Openness"`
}

// IntosaiEnvironmentDescriptor binds IntosaiIfacControlEnvironment to the
// record protocol.
func IntosaiEnvironmentDescriptor() record.Descriptor[IntosaiIfacControlEnvironment] {
	return record.Descriptor[IntosaiIfacControlEnvironment]{
		Collection: "INTOSAI, IFAC, and Government Audit Standards - Control Environment",
		Path:       "intosaiifaccontrolenvironments",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Integrity and Ethical Values",
			"Commitment to Competence",
			"Management’s Philosophy and Operating Style",
			"Organizational Structure",
			"Assignment of Authority and Responsibility",
			"Human Resource Policies and Practices",
		},
		KeyedPatch: func(c *IntosaiIfacControlEnvironment) bson.M {
			return bson.M{
				"Process":                      c.Process,
				"Integrity and Ethical Values": c.IntegrityAndEthicalValues,
				"Commitment to Competence":     c.CommitmentToCompetence,
				"Management’s Philosophy and Operating Style": c.ManagementsPhilosophy,
				"Organizational Structure":                    c.OrganizationalStructure,
				"Assignment of Authority and Responsibility":  c.AssignmentOfAuthority,
				"Human Resource Policies and Practices":       c.HumanResourcePolicies,
				"Board of Directors’ or Audit Committee’s Participation": c.BoardParticipation,
				"Management Control Methods":                             c.ManagementControlMethods,
				"External Influences":                                    c.ExternalInfluences,
				"Management’s Commitment to Internal Control":            c.CommitmentToControl,
				"Communication and Enforcement of Integrity and Ethical Values": c.CommunicationOfValues,
				"Employee Awareness and Understanding":       c.EmployeeAwareness,
				"Accountability and Performance Measurement": c.Accountability,
				"Commitment to Transparency and Openness":    c.CommitmentToTransparency,
			}
		},
		ID:         func(c *IntosaiIfacControlEnvironment) primitive.ObjectID { return c.ID },
		SetID:      func(c *IntosaiIfacControlEnvironment, id primitive.ObjectID) { c.ID = id },
		Key:        func(c *IntosaiIfacControlEnvironment) float64 { return c.No },
		Created:    func(c *IntosaiIfacControlEnvironment) time.Time { return time.Time{} },
		SetCreated: func(c *IntosaiIfacControlEnvironment, t time.Time) {},
	}
}

// OtherControlEnvironment covers the governance elements outside the COSO
// and INTOSAI frameworks.
type OtherControlEnvironment struct {
	ID                        primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No                        float64            `bson:"No" json:"No"`
	Process                   string             `bson:"Process" json:"Process"`
	ResponsibilityDelegation  string             `bson:"Responsibility Delegation Matrix" json:"Responsibility Delegation Matrix"`
	SegregationOfDuties       string             `bson:"Segregation of duties" json:"Segregation of duties"`
	ReportingLines            string             `bson:"Reporting Lines" json:"Reporting Lines"`
	Mission                   string             `bson:"Mission" json:"Mission"`
	VisionAndValues           string             `bson:"Vision and Values" json:"Vision and Values"`
	GoalsAndObjectives        string             `bson:"Goals and Objectives" json:"Goals and Objectives"`
	StructuresAndSystems      string             `bson:"Structures & Systems" json:"Structures & Systems"`
	PoliciesAndProcedures     string             `bson:"Policies and Procedures" json:"Policies and Procedures"`
	Processes                 string             `bson:"Processes" json:"Processes"`
	IntegrityAndEthicalValues string             `bson:"Integrity and Ethical Values" json:"Integrity and Ethical Values"`
	OversightStructure        string             `bson:"Oversight structure" json:"Oversight structure"`
	Standards                 string             `bson:"Standards" json:"Standards"`
	Methodologies             string             `bson:"Methodologies" json:"Methodologies"`
	RulesAndRegulations       string             `bson:"Rules and Regulations" json:"Rules and Regulations"`
}

// OtherEnvironmentDescriptor binds OtherControlEnvironment to the record
// protocol. The doubled dash in the collection name is present in the live
// database.
func OtherEnvironmentDescriptor() record.Descriptor[OtherControlEnvironment] {
	return record.Descriptor[OtherControlEnvironment]{
		Collection: "Other- - Control Environment",
		Path:       "othercontrolenvironments",
		KeyField:   "No",
		SearchFields: []string{
			"Process",
			"Responsibility Delegation Matrix",
			"Segregation of duties",
			"Reporting Lines",
			"Mission",
			"Vision and Values",
			"Goals and Objectives",
			"Policies and Procedures",
			"Standards",
		},
		KeyedPatch: func(c *OtherControlEnvironment) bson.M {
			return bson.M{
				"Process":                          c.Process,
				"Responsibility Delegation Matrix": c.ResponsibilityDelegation,
				"Segregation of duties":            c.SegregationOfDuties,
				"Reporting Lines":                  c.ReportingLines,
				"Mission":                          c.Mission,
				"Vision and Values":                c.VisionAndValues,
				"Goals and Objectives":             c.GoalsAndObjectives,
				"Structures & Systems":             c.StructuresAndSystems,
				"Policies and Procedures":          c.PoliciesAndProcedures,
				"Processes":                        c.Processes,
				"Integrity and Ethical Values":     c.IntegrityAndEthicalValues,
				"Oversight structure":              c.OversightStructure,
				"Standards":                        c.Standards,
				"Methodologies":                    c.Methodologies,
				"Rules and Regulations":            c.RulesAndRegulations,
			}
		},
		ID:         func(c *OtherControlEnvironment) primitive.ObjectID { return c.ID },
		SetID:      func(c *OtherControlEnvironment, id primitive.ObjectID) { c.ID = id },
		Key:        func(c *OtherControlEnvironment) float64 { return c.No },
		Created:    func(c *OtherControlEnvironment) time.Time { return time.Time{} },
		SetCreated: func(c *OtherControlEnvironment, t time.Time) {},
	}
}
