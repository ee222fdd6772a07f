package lifecycle

import "github.com/ellavondegurechaff/allowlist/allowlist/database/models"

type Step string

const (
	StepPersist   Step = "persist"
	StepGrantRole Step = "grant_role"
	StepAudit     Step = "audit"
	StepNotify    Step = "notify"
)

type StepResult struct {
	Step Step
	Err  error
}

func (r StepResult) OK() bool {
	return r.Err == nil
}

// Outcome lists the result of every step a transition ran, in order.
type Outcome struct {
	Application *models.Application
	Steps       []StepResult
}

func (o *Outcome) record(step Step, err error) StepResult {
	r := StepResult{Step: step, Err: err}
	o.Steps = append(o.Steps, r)
	return r
}

// Result returns the result of step, if it ran.
func (o Outcome) Result(step Step) (StepResult, bool) {
	for _, r := range o.Steps {
		if r.Step == step {
			return r, true
		}
	}
	return StepResult{}, false
}

func (o Outcome) RoleGranted() bool {
	r, ok := o.Result(StepGrantRole)
	return ok && r.OK()
}

func (o Outcome) Notified() bool {
	r, ok := o.Result(StepNotify)
	return ok && r.OK()
}
