package opython

// Function is a callable resolved from a module. Call is inherited from
// Object.
type Function struct {
	*Object
	name string
}

// Name is the qualified name the function was resolved by
func (f *Function) Name() string { return f.name }
