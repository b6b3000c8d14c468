package types

// Releaser is implemented by components that own resources requiring explicit
// release. The entity store is the sole owner of stored component values and
// invokes Release exactly once per stored value: when the component is removed,
// overwritten, or its entity is destroyed. Handles returned to script code
// alias storage and carry no ownership, so they never trigger a release.
type Releaser interface {
	Release()
}

// Resource is a shared, release-observable handle. It exists so component
// types can own something whose destruction is visible: the onFree hook fires
// when the last reference is released, synchronously at the release call.
//
// Resource is not safe for concurrent use. The component bridge runs script
// execution and native calls on a single thread.
type Resource struct {
	refs   int
	onFree func()
}

// NewResource creates a resource with a single live reference. onFree may be
// nil.
func NewResource(onFree func()) *Resource {
	return &Resource{refs: 1, onFree: onFree}
}

// Acquire adds a reference and returns the same resource for chaining.
func (r *Resource) Acquire() *Resource {
	r.refs++
	return r
}

// Release drops one reference. Dropping the last reference fires the onFree
// hook. Releasing a dead resource panics; it indicates a double-ownership bug.
func (r *Resource) Release() {
	if r.refs <= 0 {
		panic("types: release of dead resource")
	}
	r.refs--
	if r.refs == 0 && r.onFree != nil {
		r.onFree()
	}
}

// Live reports whether the resource still holds at least one reference.
func (r *Resource) Live() bool {
	return r.refs > 0
}
