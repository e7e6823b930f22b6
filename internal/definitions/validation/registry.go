package validation

import "vardef/internal/definitions/models"

// Registry maps each operation to its ordered rule list.
type Registry struct {
	rules map[Operation][]Rule
}

// NewRegistry registers the rule set for every operation. immutable is the configured
// list of fields locked once a definition is published.
func NewRegistry(codes CodeValidator, immutable []models.Field) *Registry {
	r := &Registry{rules: make(map[Operation][]Rule)}

	coded := []Rule{
		CodeMembership(models.FieldUnitTypes, ClassificationUnitTypes, codes),
		CodeMembership(models.FieldSubjectFields, ClassificationSubjectFields, codes),
		CodeMembership(models.FieldMeasurementType, ClassificationMeasurementType, codes),
	}

	r.Register(OpCreate,
		RequiredText(models.FieldName),
		RequiredText(models.FieldDefinition),
		ShortNameFormat(),
		StatusValue(),
		DateOrder(),
	)
	r.Register(OpCreate, coded...)

	r.Register(OpPatch,
		DisallowedPatchField(models.FieldShortName, models.ErrShortNameNotAllowed),
		DisallowedPatchField(models.FieldValidFrom, models.ErrValidFromNotAllowed),
		ClosedPeriod(),
		StatusValue(),
		StatusTransition(),
	)
	for _, f := range immutable {
		r.Register(OpPatch, PublishedImmutable(f))
	}
	r.Register(OpPatch,
		RequiredText(models.FieldName),
		RequiredText(models.FieldDefinition),
		DateOrder(),
	)
	r.Register(OpPatch, coded...)

	r.Register(OpValidityPeriod,
		DisallowedPatchField(models.FieldShortName, models.ErrShortNameNotAllowed),
		StatusValue(),
		StatusTransition(),
		RequiredText(models.FieldName),
		RequiredText(models.FieldDefinition),
		DateOrder(),
	)
	r.Register(OpValidityPeriod, coded...)
	return r
}

// Register appends rules to op.
func (r *Registry) Register(op Operation, rules ...Rule) {
	r.rules[op] = append(r.rules[op], rules...)
}

// Rules returns op's rules in evaluation order.
func (r *Registry) Rules(op Operation) []Rule {
	return r.rules[op]
}

// Evaluate runs every rule for op and returns all results.
func (r *Registry) Evaluate(op Operation, c Candidate, s State) []Result {
	results := make([]Result, 0, len(r.rules[op]))
	for _, rule := range r.rules[op] {
		results = append(results, rule.Check(c, s))
	}
	return results
}

// Validate runs op's rules and returns the first failure.
func (r *Registry) Validate(op Operation, c Candidate, s State) error {
	for _, rule := range r.rules[op] {
		if res := rule.Check(c, s); !res.OK() {
			return res.Err
		}
	}
	return nil
}
