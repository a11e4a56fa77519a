package drawer

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-textpipeline/pkg/pipeline"
	"github.com/askiada/go-textpipeline/pkg/pipeline/measure"
)

const endStepName = "end"

// DrawRegistry draws every pipeline of reg from its name to its end, through its steps in order.
// msr can be nil.
func DrawRegistry(drw Drawer, reg *pipeline.Registry, msr measure.Measure) error {
	if reg == nil {
		return pipeline.ErrRegistryMustBeSet
	}

	for _, name := range reg.Names() {
		steps, ok := reg.Get(name)
		if !ok {
			continue
		}

		err := drw.AddStep(measure.Key(name, ""), false)
		if err != nil {
			return errors.Wrapf(err, "unable to add pipeline %s", name)
		}

		parent := measure.Key(name, "")

		for idx, step := range steps {
			stepName := measure.Key(name, step.Info(name, idx).Label())

			err = drw.AddStep(stepName, !step.Enabled)
			if err != nil {
				return errors.Wrapf(err, "unable to add step %s", stepName)
			}

			err = drw.AddLink(parent, stepName)
			if err != nil {
				return err
			}

			parent = stepName
		}

		end := measure.Key(name, endStepName)

		err = drw.AddStep(end, false)
		if err != nil {
			return errors.Wrapf(err, "unable to add end of pipeline %s", name)
		}

		err = drw.AddLink(parent, end)
		if err != nil {
			return err
		}
	}

	if msr != nil {
		err := drw.AddMeasure(msr)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := drw.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipelines")
	}

	return nil
}
