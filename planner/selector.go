package planner

import (
	"fmt"
	"math/rand/v2"
)

// Weight bounds for a task. Zero keeps a task visible in summaries while
// excluding it from selection.
const (
	MinWeight = 0
	MaxWeight = 5
)

// Task is one open tracker issue with its user-assigned weight.
type Task struct {
	Key     string
	Summary string
	Weight  int
}

// Selector draws tasks with probability proportional to their weight,
// sampling with replacement on every call.
type Selector struct {
	tasks []Task
	total int
	rng   *rand.Rand
}

// NewSelector builds a selector over the positive-weight tasks. A nil rng
// falls back to a time-seeded source; tests pass a fixed-seed rand.
func NewSelector(tasks []Task, rng *rand.Rand) (*Selector, error) {
	eligible := make([]Task, 0, len(tasks))
	total := 0
	for _, task := range tasks {
		if task.Weight < MinWeight || task.Weight > MaxWeight {
			return nil, fmt.Errorf(
				"%w: weight %d for task %s is outside %d..%d",
				ErrConfiguration,
				task.Weight,
				task.Key,
				MinWeight,
				MaxWeight,
			)
		}
		if task.Weight == 0 {
			continue
		}
		eligible = append(eligible, task)
		total += task.Weight
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no task has a positive weight", ErrConfiguration)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{tasks: eligible, total: total, rng: rng}, nil
}

// Pick returns one task by a cumulative-weight draw over the weight sum.
func (s *Selector) Pick() Task {
	draw := s.rng.IntN(s.total)
	for _, task := range s.tasks {
		draw -= task.Weight
		if draw < 0 {
			return task
		}
	}
	return s.tasks[len(s.tasks)-1]
}
