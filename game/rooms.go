package game

import "sync"

// RoomIndex maps room names to the set of connection ids joined to them.
// Joining a new room does not remove earlier memberships; a connection can
// receive messages for every room it ever joined until it disconnects.
type RoomIndex struct {
	mu    sync.Mutex
	rooms map[string]map[string]struct{}
}

func NewRoomIndex() *RoomIndex {
	return &RoomIndex{rooms: make(map[string]map[string]struct{})}
}

// Join adds a connection to the room's member set, creating the room on
// first use.
func (ri *RoomIndex) Join(id, room string) {
	ri.mu.Lock()
	defer ri.mu.Unlock()

	members, ok := ri.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		ri.rooms[room] = members
	}
	members[id] = struct{}{}
}

// RemoveConn strips a connection from every room it belongs to and drops
// rooms that become empty.
func (ri *RoomIndex) RemoveConn(id string) {
	ri.mu.Lock()
	defer ri.mu.Unlock()

	for room, members := range ri.rooms {
		delete(members, id)
		if len(members) == 0 {
			delete(ri.rooms, room)
		}
	}
}

// Members returns a copy of the room's member ids, nil for an unknown room.
func (ri *RoomIndex) Members(room string) []string {
	ri.mu.Lock()
	defer ri.mu.Unlock()

	members, ok := ri.rooms[room]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids
}
