package opython

// Instance is an object created by Class.New
type Instance struct {
	*Object
	class *Class
}

// Class the instance was created from
func (o *Instance) Class() *Class { return o.class }

// Call calls method name of the instance with args
func (o *Instance) Call(method string, args ...interface{}) (interface{}, error) {
	return o.CallMethod(method, args...)
}
