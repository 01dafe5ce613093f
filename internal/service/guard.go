package service

import "messenger/internal/models"

// CanMutateReadState reports whether callerID may flip the read flag of msg.
// Only the receiver may.
func CanMutateReadState(msg models.Message, callerID int) bool {
	return msg.ReceiverID == callerID
}
