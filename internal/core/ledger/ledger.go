// Package ledger records the answers given during one round of questions.
package ledger

// Ledger is an append-only list of answers for a round of fixed size.
// It is not safe for concurrent use; the owner serializes access.
type Ledger struct {
	size    int
	answers []string
}

// New creates a ledger expecting size answers.
func New(size int) *Ledger {
	if size < 0 {
		size = 0
	}
	return &Ledger{size: size, answers: make([]string, 0, size)}
}

// Record appends an answer for the current question and returns its index.
// It does nothing and returns false once the round is complete.
func (ledger *Ledger) Record(answer string) (int, bool) {
	if ledger.Complete() {
		return 0, false
	}
	ledger.answers = append(ledger.answers, answer)
	return len(ledger.answers) - 1, true
}

// Answer returns the answer recorded at index.
func (ledger *Ledger) Answer(index int) (string, bool) {
	if index < 0 || index >= len(ledger.answers) {
		return "", false
	}
	return ledger.answers[index], true
}

// Answers returns a copy of the recorded answers.
func (ledger *Ledger) Answers() []string {
	return append([]string(nil), ledger.answers...)
}

// Current is the index of the next unanswered question.
func (ledger *Ledger) Current() int {
	return len(ledger.answers)
}

// Len returns the number of recorded answers.
func (ledger *Ledger) Len() int {
	return len(ledger.answers)
}

// Size returns the number of questions in the round.
func (ledger *Ledger) Size() int {
	return ledger.size
}

// Complete reports whether every question has an answer.
func (ledger *Ledger) Complete() bool {
	return len(ledger.answers) >= ledger.size
}

// Reset clears all answers and prepares the ledger for a round of the given size.
func (ledger *Ledger) Reset(size int) {
	if size < 0 {
		size = 0
	}
	ledger.size = size
	ledger.answers = ledger.answers[:0]
}
