package pmml

import (
	"encoding/xml"
)

// MiningFunction is the kind of prediction a model makes.
type MiningFunction string

const (
	MiningFunctionClassification MiningFunction = "classification"
)

// UsageType is the role of a mining field.
type UsageType string

const (
	UsageTypeActive UsageType = "active"
	UsageTypeTarget UsageType = "target"
)

// Model is the scoring body of a document.
type Model interface {
	Function() MiningFunction
	Mining() *MiningSchema
}

// MiningSchema lists the fields a model uses.
type MiningSchema struct {
	MiningFields []MiningField `xml:"MiningField"`
}

// MiningField is one field of a mining schema.
type MiningField struct {
	Name      string    `xml:"name,attr"`
	UsageType UsageType `xml:"usageType,attr,omitempty"`
}

// Names returns the field names with the given usage type, in order.
func (ms *MiningSchema) Names(usage UsageType) []string {
	var names []string

	for _, mf := range ms.MiningFields {
		if mf.UsageType == usage || (usage == UsageTypeActive && mf.UsageType == "") {
			names = append(names, mf.Name)
		}
	}

	return names
}

// CriterionFirstHit selects the first matching rule.
const CriterionFirstHit = "firstHit"

// RuleSetModel scores a record with an ordered list of rules.
type RuleSetModel struct {
	XMLName      xml.Name       `xml:"RuleSetModel"`
	ModelName    string         `xml:"modelName,attr,omitempty"`
	FunctionName MiningFunction `xml:"functionName,attr"`
	MiningSchema MiningSchema   `xml:"MiningSchema"`
	RuleSet      RuleSet        `xml:"RuleSet"`
}

func (m *RuleSetModel) Function() MiningFunction { return m.FunctionName }

func (m *RuleSetModel) Mining() *MiningSchema { return &m.MiningSchema }

// RuleSet holds the rules and the fallback used when none fires.
type RuleSet struct {
	DefaultScore         *string               `xml:"defaultScore,attr,omitempty"`
	DefaultConfidence    *float64              `xml:"defaultConfidence,attr,omitempty"`
	RuleSelectionMethods []RuleSelectionMethod `xml:"RuleSelectionMethod"`
	Rules                []SimpleRule          `xml:"SimpleRule"`
}

// RuleSelectionMethod names how firing rules are combined.
type RuleSelectionMethod struct {
	Criterion string `xml:"criterion,attr"`
}

// SimpleRule yields Score when Predicate holds.
type SimpleRule struct {
	ID        string `xml:"id,attr,omitempty"`
	Score     string `xml:"score,attr"`
	Predicate Predicate
}
