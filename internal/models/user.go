package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user account in the DevConnect system.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"first_name" json:"first_name"`
	LastName       string             `bson:"last_name" json:"last_name"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Age            int                `bson:"age" json:"age"`
	Gender         string             `bson:"gender" json:"gender"`
	Skills         []string           `bson:"skills" json:"skills"`
	ProfileImg     string             `bson:"profile_img" json:"profile_img"`
	Bio            string             `bson:"bio" json:"bio"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// FeedUser is the public projection of a user shown in the feed and in
// request listings: no email, no bio, no password hash.
type FeedUser struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FirstName  string             `bson:"first_name" json:"first_name"`
	LastName   string             `bson:"last_name" json:"last_name"`
	Age        int                `bson:"age" json:"age"`
	Gender     string             `bson:"gender" json:"gender"`
	Skills     []string           `bson:"skills" json:"skills"`
	ProfileImg string             `bson:"profile_img" json:"profile_img"`
}

// FeedProjection converts a full user record into its feed projection.
func (u *User) FeedProjection() FeedUser {
	return FeedUser{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Age:        u.Age,
		Gender:     u.Gender,
		Skills:     u.Skills,
		ProfileImg: u.ProfileImg,
	}
}

// ProfileUpdate is the allow-listed set of fields a user may edit on their
// own profile. Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	Age        *int      `json:"age,omitempty"`
	Gender     *string   `json:"gender,omitempty"`
	Skills     *[]string `json:"skills,omitempty"`
	ProfileImg *string   `json:"profile_img,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
}
