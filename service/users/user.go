package users

import (
	"fmt"
	"time"

	"github.com/floriva/shop-telegram/service/auth"
)

// User is the durable local identity record, keyed by the Telegram user id.
type User struct {
	Id        int64     `bson:"id" json:"id"`
	FirstName string    `bson:"firstName" json:"first_name"`
	LastName  string    `bson:"lastName" json:"last_name"`
	UserName  string    `bson:"userName" json:"username"`
	Locale    string    `bson:"locale" json:"locale"`
	Premium   bool      `bson:"premium" json:"premium"`
	Created   time.Time `bson:"created" json:"created"`
	Seen      time.Time `bson:"seen" json:"seen"`
}

func newUser(tgUser auth.TelegramUser, now time.Time) (u User) {
	u = User{
		Id:        tgUser.Id,
		FirstName: tgUser.FirstName,
		LastName:  tgUser.LastName,
		UserName:  tgUser.UserName,
		Locale:    tgUser.LanguageCode,
		Premium:   tgUser.IsPremium,
		Created:   now,
		Seen:      now,
	}
	if u.UserName == "" {
		u.UserName = fmt.Sprintf("tg_%d", tgUser.Id)
	}
	return
}
