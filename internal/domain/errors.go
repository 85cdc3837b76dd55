package domain

import "errors"

// Auth errors
var (
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

// Room errors
var (
	ErrRoomNotFound  = errors.New("chat room not found")
	ErrRoomFull      = errors.New("chat room is full")
	ErrAlreadyMember = errors.New("user is already in this chat room")
)

// Message errors
var (
	ErrNotParticipant = errors.New("user is not a participant in this chat")
)

// Agent errors
var (
	ErrUnknownAgent = errors.New("unknown agent type")
)
