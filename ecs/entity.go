package ecs

import "strconv"

// Entity is the dense identity of a sprite: its index in the Store.
type Entity int

// HandleID is the key the render layer uses for this entity's handle.
func (e Entity) HandleID() string {
	return "entity" + strconv.Itoa(int(e))
}

func (e Entity) String() string {
	return strconv.Itoa(int(e))
}
