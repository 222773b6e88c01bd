package wayland

// GetRegistry builds wl_display.get_registry.
func GetRegistry(registry ObjectID) Message {
	return Message{
		Sender: DisplayID,
		Opcode: DisplayGetRegistry,
		Args:   new(ArgWriter).Object(registry).Bytes(),
	}
}

// Sync builds wl_display.sync.
func Sync(callback ObjectID) Message {
	return Message{
		Sender: DisplayID,
		Opcode: DisplaySync,
		Args:   new(ArgWriter).Object(callback).Bytes(),
	}
}

// Bind builds wl_registry.bind for an untyped new_id.
func Bind(registry ObjectID, name uint32, iface string, version uint32, id ObjectID) Message {
	return Message{
		Sender: registry,
		Opcode: RegistryBind,
		Args:   new(ArgWriter).Uint(name).String(iface).Uint(version).Object(id).Bytes(),
	}
}

// GetRiverOutputStatus builds zriver_status_manager_v1.get_river_output_status.
func GetRiverOutputStatus(manager, id, output ObjectID) Message {
	return Message{
		Sender: manager,
		Opcode: RiverStatusManagerGetOutputStatus,
		Args:   new(ArgWriter).Object(id).Object(output).Bytes(),
	}
}

// GetRiverSeatStatus builds zriver_status_manager_v1.get_river_seat_status.
func GetRiverSeatStatus(manager, id, seat ObjectID) Message {
	return Message{
		Sender: manager,
		Opcode: RiverStatusManagerGetSeatStatus,
		Args:   new(ArgWriter).Object(id).Object(seat).Bytes(),
	}
}

// Destroy builds an argument-less destructor request.
func Destroy(object ObjectID, opcode uint16) Message {
	return Message{Sender: object, Opcode: opcode}
}

// IDAllocator hands out client-side object ids. Ids are never reused.
type IDAllocator struct {
	next ObjectID
}

// Next returns a fresh object id.
func (a *IDAllocator) Next() ObjectID {
	if a.next <= DisplayID {
		a.next = DisplayID + 1
	}
	id := a.next
	a.next++
	return id
}
