package game

import "errors"

var (
	ErrInventoryFull = errors.New("inventory is full")
	ErrRoomNotFound  = errors.New("room not found")
)
