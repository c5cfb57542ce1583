package schema

// Stage is one step of the validation pipeline. A stage may replace the node
// it was given; it signals failure by appending to report and returning
// false, which stops the run.
type Stage interface {
	Validate(ctx *Context, report *Report, node Node) (Node, bool)
}

// Pipeline runs a fixed, statically ordered sequence of stages. There is no
// per-stage "what comes next" decision: order is decided once, here.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds a pipeline over the given stages. With no arguments it
// returns the default order: reference resolution, then syntax checking.
func NewPipeline(stages ...Stage) *Pipeline {
	if len(stages) == 0 {
		stages = []Stage{RefResolutionStage{}, SyntaxStage{}}
	}
	return &Pipeline{stages: stages}
}

// Run feeds node through every stage in order, stopping at the first failure.
// The returned node is the last successful stage's output.
func (p *Pipeline) Run(ctx *Context, report *Report, node Node) (Node, bool) {
	current := node
	for _, s := range p.stages {
		next, ok := s.Validate(ctx, report, current)
		if !ok {
			return current, false
		}
		current = next
	}
	return current, true
}

// RefResolutionStage adapts ResolveRefWith to the Stage interface. It is the
// first stage of the default pipeline: downstream stages always see fully
// dereferenced nodes.
type RefResolutionStage struct {
	Options ResolveOptions
}

// Validate implements Stage.
func (s RefResolutionStage) Validate(ctx *Context, report *Report, node Node) (Node, bool) {
	return ResolveRefWith(ctx, report, node, s.Options)
}
