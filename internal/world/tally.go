package world

// Tally accumulates the run's kill rewards.
type Tally struct {
	Kills      int
	Experience int
	Score      int
}

func (t *Tally) Record(exp, score int) {
	t.Kills++
	t.Experience += exp
	t.Score += score
}

func (t *Tally) Reset() { *t = Tally{} }
