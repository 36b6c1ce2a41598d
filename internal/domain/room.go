package domain

type (
	RoomCode string
	RoomName string
)

const MaxRoomNameLen = 36

type Room struct {
	Code RoomCode
	Name RoomName
}
