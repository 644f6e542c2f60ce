// Package domain contains pure, dependency-free domain models and types
// for the vendor evaluation scoring engine.
package domain

// ScoringMethod identifies the aggregation scheme an evaluation uses.
// The method is selected once per evaluation and is fixed for its lifetime
// in normal operation.
type ScoringMethod string

// The five supported scoring methods.
const (
	// MethodSimpleAverage averages requirement scores within each category
	// and averages category scores into the overall score.
	MethodSimpleAverage ScoringMethod = "simple_average"

	// MethodCategoryWeighted averages requirement scores within each category
	// and combines category scores using configured category weights.
	MethodCategoryWeighted ScoringMethod = "category_weighted"

	// MethodRequirementWeighted combines requirement scores within each
	// category using per-requirement weights, then applies category weights.
	MethodRequirementWeighted ScoringMethod = "requirement_weighted"

	// MethodMoSCoWWeighted replaces per-requirement weights with fixed
	// priority multipliers (Must=4, Should=2, Could=1, Wont=0), then applies
	// category weights.
	MethodMoSCoWWeighted ScoringMethod = "moscow_weighted"

	// MethodMultiStakeholder pools scores within each stakeholder area and
	// combines area scores using configured area weights.
	MethodMultiStakeholder ScoringMethod = "multi_stakeholder"
)

// String returns the string representation of the scoring method.
func (m ScoringMethod) String() string { return string(m) }

// Valid reports whether the method is one of the five supported values.
func (m ScoringMethod) Valid() bool {
	switch m {
	case MethodSimpleAverage, MethodCategoryWeighted, MethodRequirementWeighted,
		MethodMoSCoWWeighted, MethodMultiStakeholder:
		return true
	}
	return false
}

// UsesCategoryWeights reports whether the method combines category scores
// using configured category weights, which must then sum to 100.
func (m ScoringMethod) UsesCategoryWeights() bool {
	switch m {
	case MethodCategoryWeighted, MethodRequirementWeighted, MethodMoSCoWWeighted:
		return true
	}
	return false
}

// UsesStakeholderAreas reports whether the method pools scores per
// stakeholder area and therefore requires area assignments on submissions.
func (m ScoringMethod) UsesStakeholderAreas() bool {
	return m == MethodMultiStakeholder
}

// Methods returns all supported scoring methods in a stable order.
func Methods() []ScoringMethod {
	return []ScoringMethod{
		MethodSimpleAverage,
		MethodCategoryWeighted,
		MethodRequirementWeighted,
		MethodMoSCoWWeighted,
		MethodMultiStakeholder,
	}
}

// Priority classifies a requirement on the MoSCoW scale.
type Priority string

// MoSCoW priorities.
const (
	PriorityMustHave   Priority = "must_have"
	PriorityShouldHave Priority = "should_have"
	PriorityCouldHave  Priority = "could_have"
	PriorityWontHave   Priority = "wont_have"
)

// moscowMultipliers is the fixed multiplier table used by the MoSCoW
// weighted method. It is intentionally not user-configurable.
var moscowMultipliers = map[Priority]float64{
	PriorityMustHave:   4,
	PriorityShouldHave: 2,
	PriorityCouldHave:  1,
	PriorityWontHave:   0,
}

// Valid reports whether the priority is a known MoSCoW value.
func (p Priority) Valid() bool {
	_, ok := moscowMultipliers[p]
	return ok
}

// Multiplier returns the fixed MoSCoW weight multiplier for the priority.
// Unknown priorities yield 0 so they can never inflate a roll-up.
func (p Priority) Multiplier() float64 { return moscowMultipliers[p] }

// Role identifies the caller's capability level as supplied by the external
// identity collaborator. The engine gates operations on roles; it performs
// no authentication of its own.
type Role string

// Caller roles.
const (
	RoleEvaluator Role = "evaluator"
	RoleReviewer  Role = "reviewer"
	RoleAdmin     Role = "admin"
	RoleObserver  Role = "observer"
)

// CanScore reports whether the role may submit individual scores.
func (r Role) CanScore() bool {
	return r == RoleEvaluator || r == RoleReviewer || r == RoleAdmin
}

// CanFacilitate reports whether the role may drive consensus transitions.
func (r Role) CanFacilitate() bool {
	return r == RoleReviewer || r == RoleAdmin
}

// Category groups requirements under a configured weight. Weights are
// expressed as percentages and must sum to 100 across active categories
// when a category weighted method is selected.
type Category struct {
	// ID uniquely identifies the category within its evaluation.
	ID string `yaml:"id" json:"id" validate:"required"`

	// Name is the human-readable category label.
	Name string `yaml:"name" json:"name"`

	// Weight is the category's share of the overall score, 0-100.
	Weight float64 `yaml:"weight" json:"weight" validate:"min=0,max=100"`

	// Archived categories are retained for history but excluded from
	// validation and aggregation.
	Archived bool `yaml:"archived,omitempty" json:"archived,omitempty"`
}

// StakeholderArea is an evaluator perspective with its own weighted scoring
// lane under the multi-stakeholder method.
type StakeholderArea struct {
	// ID uniquely identifies the area within its evaluation.
	ID string `yaml:"id" json:"id" validate:"required"`

	// Name is the human-readable area label.
	Name string `yaml:"name" json:"name"`

	// Weight is the area's share of the overall score, 0-100.
	Weight float64 `yaml:"weight" json:"weight" validate:"min=0,max=100"`
}

// Requirement is a single scorable criterion belonging to a category.
type Requirement struct {
	// ID uniquely identifies the requirement within its evaluation.
	ID string `yaml:"id" json:"id" validate:"required"`

	// CategoryID references the owning category.
	CategoryID string `yaml:"category_id" json:"category_id" validate:"required"`

	// Title is the human-readable requirement statement.
	Title string `yaml:"title" json:"title"`

	// Priority is the requirement's MoSCoW classification. WontHave
	// requirements are retained for scope documentation but always carry
	// effective weight 0 in aggregation.
	Priority Priority `yaml:"priority" json:"priority" validate:"required,oneof=must_have should_have could_have wont_have"`

	// Weight is the requirement's relative weight under the requirement
	// weighted method. Zero is treated as the default weight of 1.
	Weight float64 `yaml:"weight,omitempty" json:"weight,omitempty" validate:"min=0"`

	// Draft requirements have not been finalized by the external lifecycle
	// collaborator and are omitted from aggregation inputs.
	Draft bool `yaml:"draft,omitempty" json:"draft,omitempty"`
}

// EffectiveWeight returns the weight the requirement contributes under the
// requirement weighted method, applying the default of 1 and the WontHave
// exclusion.
func (r Requirement) EffectiveWeight() float64 {
	if r.Priority == PriorityWontHave {
		return 0
	}
	if r.Weight <= 0 {
		return 1
	}
	return r.Weight
}

// InScope reports whether the requirement participates in aggregation and
// completeness accounting.
func (r Requirement) InScope() bool {
	return !r.Draft && r.Priority != PriorityWontHave
}

// Vendor is a scoring subject. The engine treats vendors as opaque beyond
// their identity and exclusion flag.
type Vendor struct {
	// ID uniquely identifies the vendor within its evaluation.
	ID string `yaml:"id" json:"id" validate:"required"`

	// Name is the human-readable vendor label.
	Name string `yaml:"name" json:"name"`

	// Excluded vendors (for example "Excluded from Evaluation") are omitted
	// from rankings and comparisons.
	Excluded bool `yaml:"excluded,omitempty" json:"excluded,omitempty"`
}

// Evaluation is the root configuration object. The engine reads it as
// supplied by the external configuration service and never mutates it.
type Evaluation struct {
	// ID uniquely identifies the evaluation.
	ID string `yaml:"id" json:"id" validate:"required"`

	// Name is the human-readable evaluation label.
	Name string `yaml:"name" json:"name"`

	// Method selects one of the five aggregation schemes.
	Method ScoringMethod `yaml:"method" json:"method" validate:"required"`

	// Scale defines the numeric bounds and granularity for scores.
	Scale Scale `yaml:"scale" json:"scale"`

	// Categories are the evaluation's requirement groupings.
	Categories []Category `yaml:"categories" json:"categories" validate:"dive"`

	// StakeholderAreas are the evaluation's scoring lanes, used only by the
	// multi-stakeholder method.
	StakeholderAreas []StakeholderArea `yaml:"stakeholder_areas,omitempty" json:"stakeholder_areas,omitempty" validate:"dive"`

	// Requirements are the scorable criteria across all categories.
	Requirements []Requirement `yaml:"requirements" json:"requirements" validate:"dive"`

	// Vendors are the scoring subjects.
	Vendors []Vendor `yaml:"vendors" json:"vendors" validate:"dive"`
}

// ActiveCategories returns the evaluation's non-archived categories.
func (e *Evaluation) ActiveCategories() []Category {
	out := make([]Category, 0, len(e.Categories))
	for _, c := range e.Categories {
		if !c.Archived {
			out = append(out, c)
		}
	}
	return out
}

// ActiveVendors returns the evaluation's non-excluded vendors.
func (e *Evaluation) ActiveVendors() []Vendor {
	out := make([]Vendor, 0, len(e.Vendors))
	for _, v := range e.Vendors {
		if !v.Excluded {
			out = append(out, v)
		}
	}
	return out
}

// InScopeRequirements returns the finalized, non-WontHave requirements that
// participate in aggregation and completeness accounting.
func (e *Evaluation) InScopeRequirements() []Requirement {
	out := make([]Requirement, 0, len(e.Requirements))
	for _, r := range e.Requirements {
		if r.InScope() {
			out = append(out, r)
		}
	}
	return out
}

// CategoryByID looks up a category by its identifier.
func (e *Evaluation) CategoryByID(id string) (Category, bool) {
	for _, c := range e.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// RequirementByID looks up a requirement by its identifier.
func (e *Evaluation) RequirementByID(id string) (Requirement, bool) {
	for _, r := range e.Requirements {
		if r.ID == id {
			return r, true
		}
	}
	return Requirement{}, false
}

// VendorByID looks up a vendor by its identifier.
func (e *Evaluation) VendorByID(id string) (Vendor, bool) {
	for _, v := range e.Vendors {
		if v.ID == id {
			return v, true
		}
	}
	return Vendor{}, false
}

// AreaByID looks up a stakeholder area by its identifier.
func (e *Evaluation) AreaByID(id string) (StakeholderArea, bool) {
	for _, a := range e.StakeholderAreas {
		if a.ID == id {
			return a, true
		}
	}
	return StakeholderArea{}, false
}
