package domain

// User is the account record. Email is unique within the store and doubles as
// the owner identifier of everything the user creates.
type User struct {
	ID        string `json:"id" bson:"_id"`
	Email     string `json:"email" bson:"email"`
	Name      string `json:"name" bson:"name"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

func (u User) GetID() string { return u.ID }

func (u User) WithID(id string) User {
	u.ID = id
	return u
}
