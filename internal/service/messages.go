package service

import "fmt"

// Caller-facing messages. Existing clients match on these strings.
const (
	MsgSignupRequired   = "Name, email, password, address, phoneNumber, and age are required!"
	MsgSignupSucceeded  = "User registered successfully!"
	MsgSignupFailed     = "Some error occurred while registering the User."
	MsgLoginRequired    = "Email and password are required!"
	MsgUserNotFound     = "User not found!"
	MsgInvalidPassword  = "Invalid password!"
	MsgContentEmpty     = "Content can not be empty!"
	MsgCreateFailed     = "Some error occurred while creating the User."
	MsgListFailed       = "Some error occurred while retrieving users."
	MsgUserUpdated      = "User was updated successfully."
	MsgUserDeleted      = "User was deleted successfully!"
	MsgDeleteAllFailed  = "Some error occurred while removing all users."
	MsgTokenIssueFailed = "Could not issue token."
)

func msgLookupByEmailFailed(email string) string {
	return "Error retrieving User with email: " + email
}

func msgCannotFindUser(id string) string {
	return fmt.Sprintf("Cannot find User with id=%s.", id)
}

func msgLookupByIDFailed(id string) string {
	return "Error retrieving User with id=" + id
}

// MsgUpdateMissed is returned when an update matched no user.
func MsgUpdateMissed(id string) string {
	return fmt.Sprintf("Cannot update User with id=%s. Maybe User was not found or req.body is empty!", id)
}

func msgUpdateFailed(id string) string {
	return "Error updating User with id=" + id
}

// MsgDeleteMissed is returned when a delete matched no user.
func MsgDeleteMissed(id string) string {
	return fmt.Sprintf("Cannot delete User with id=%s. Maybe User was not found!", id)
}

func msgDeleteFailed(id string) string {
	return "Could not delete User with id=" + id
}

// MsgUsersDeleted reports a bulk delete.
func MsgUsersDeleted(n int64) string {
	return fmt.Sprintf("%d Users were deleted successfully!", n)
}
