package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registrant stored in the users collection. Password
// holds a bcrypt hash; the plaintext never survives registration.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	MobileNo  string             `bson:"mobile_no"`
	CreatedAt time.Time          `bson:"created_at"`
}

// RegisterForm carries the raw registration fields. Absent form fields bind
// to empty strings; validation treats those as missing.
type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	MobileNo string `form:"mobileNo"`
}

// LoginForm carries the login credentials.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// FieldError is a single user-facing validation message.
type FieldError struct {
	Msg string `json:"msg"`
}
