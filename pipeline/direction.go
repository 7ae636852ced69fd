package pipeline

// Nothing disables one direction of a pipeline at the contract level. A
// Pipeline[R, Nothing] accepts no outbound operations; a
// Pipeline[Nothing, W] accepts no inbound events.
type Nothing struct{}

// Direction declares which traffic a handler participates in.
const (
	In   Direction = 0x01
	Out  Direction = 0x02
	Both Direction = In | Out
)

var directions = map[Direction]string{
	In:   "In",
	Out:  "Out",
	Both: "Both",
}

// Direction represents a handler's capability set: inbound events, outbound
// operations, or both.
type Direction byte

func (d Direction) String() string {
	return directions[d]
}

func (d Direction) handlesIn() bool {
	return d&In != 0
}

func (d Direction) handlesOut() bool {
	return d&Out != 0
}

// nothing reports whether T is the Nothing sentinel.
func nothing[T any]() bool {
	var v T
	_, ok := any(v).(Nothing)
	return ok
}
