package model

import "time"

type Subscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
