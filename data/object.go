package data

// ObjectRef identifies a single stored backup object inside a backend,
// as reported by a full store scan.
type ObjectRef struct {
	Scheme string
	Key    string
}
