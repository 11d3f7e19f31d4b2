package models

import (
	"fmt"
	"hash/fnv"

	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

// BioLimit caps profile bios, matching the editor's character counter.
const BioLimit = 200

var avatarStyles = []string{
	"adventurer", "avataaars", "big-smile", "bottts",
	"croodles", "identicon", "micah", "thumbs",
}

// DefaultAvatar returns a deterministic generated avatar URL for a new
// account. The style is picked from the username so two users with similar
// names still get stable, distinct images.
func DefaultAvatar(username string) string {
	h := fnv.New32a()
	h.Write([]byte(username))
	style := avatarStyles[int(h.Sum32())%len(avatarStyles)]
	return fmt.Sprintf("https://api.dicebear.com/6.x/%s/svg?seed=%s", style, username)
}

type PersonalInfo struct {
	Fullname   string `json:"fullname"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Username   string `json:"username"`
	Bio        string `json:"bio"`
	ProfileImg string `json:"profile_img"`
}

type AccountInfo struct {
	TotalPosts int64 `json:"total_posts"`
	TotalReads int64 `json:"total_reads"`
}

// User is the identity record. Email and username are globally unique;
// Password holds a bcrypt hash and is empty when GoogleAuth is set.
type User struct {
	ID           UserID                          `json:"id"`
	PersonalInfo PersonalInfo                    `json:"personal_info"`
	GoogleAuth   bool                            `json:"google_auth"`
	AccountInfo  AccountInfo                     `json:"account_info"`
	Posts        []PostID                        `json:"posts"`
	JoinedAt     surrealdb_models.CustomDateTime `json:"joined_at"`
}

// PublicProfile is a User as exposed by profile and search endpoints:
// no password hash, no auth provider flag, no post ownership list.
type PublicProfile struct {
	PersonalInfo PersonalInfo                    `json:"personal_info"`
	AccountInfo  AccountInfo                     `json:"account_info"`
	JoinedAt     surrealdb_models.CustomDateTime `json:"joined_at"`
}

func (u User) PublicProfile() PublicProfile {
	info := u.PersonalInfo
	info.Password = ""
	return PublicProfile{
		PersonalInfo: info,
		AccountInfo:  u.AccountInfo,
		JoinedAt:     u.JoinedAt,
	}
}
