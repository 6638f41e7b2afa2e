package session

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/pet"
)

// Step is a scripted input delivered just before the given tick runs.
type Step struct {
	At    int64
	Input core.Input
}

// ParseScript parses a comma-separated list of cmd@tick entries,
// e.g. "f@10,p@300,hello@400". Steps are returned sorted by tick, keeping
// the written order for ties.
func ParseScript(script string) ([]Step, error) {
	var steps []Step
	for _, field := range strings.Split(script, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		at := strings.LastIndex(field, "@")
		if at <= 0 {
			return nil, fmt.Errorf("session: script entry %q: want cmd@tick", field)
		}
		tick, err := strconv.ParseInt(field[at+1:], 10, 64)
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("session: script entry %q: bad tick", field)
		}
		steps = append(steps, Step{At: tick, Input: core.ParseInput(field[:at])})
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].At < steps[j].At
	})
	return steps, nil
}

// StepResult is the outcome of a stepped run.
type StepResult struct {
	Status pet.Status
	Quit   bool
	Ticks  int64
}

// FinalMessage is the line shown when the run ends.
func (r StepResult) FinalMessage() string {
	if r.Quit {
		return ExitMessage
	}
	return r.Status.Message()
}

// Label names the outcome for run history: "quit" or the status name.
func (r StepResult) Label() string {
	if r.Quit {
		return "quit"
	}
	return r.Status.String()
}

// RunSteps drives engine without a wall clock for up to maxTicks ticks,
// delivering each scripted input when its tick comes up. The engine should
// be created without pet.WithRealTime so the header clock advances itself.
func RunSteps(engine *pet.Engine, steps []Step, maxTicks int64) StepResult {
	next := 0
	for engine.Ticks() < maxTicks {
		for next < len(steps) && steps[next].At <= engine.Ticks() {
			in := steps[next].Input
			next++

			engine.NoteInput()
			if in.Command == core.CommandQuit {
				return StepResult{Quit: true, Ticks: engine.Ticks()}
			}
			if status := dispatch(engine, in); status.Terminal() {
				return StepResult{Status: status, Ticks: engine.Ticks()}
			}
		}

		if status := engine.Tick(); status.Terminal() {
			return StepResult{Status: status, Ticks: engine.Ticks()}
		}
	}
	return StepResult{Status: pet.StatusOngoing, Ticks: engine.Ticks()}
}

// dispatch runs the engine handler for in. Quit is handled by the caller.
func dispatch(engine *pet.Engine, in core.Input) pet.Status {
	switch in.Command {
	case core.CommandFeed:
		return engine.Feed()
	case core.CommandPlay:
		return engine.Play()
	case core.CommandSleep:
		return engine.Sleep()
	case core.CommandSay:
		engine.Say(in.Text)
	}
	return pet.StatusOngoing
}
