package domain

import "time"

type CardSet struct {
	Id          int64     `json:"id"`
	OwnerId     int64     `json:"ownerId"`
	Name        string    `json:"setName"`
	Category    Category  `json:"category"`
	Subcategory string    `json:"subCategory"`
	Description string    `json:"description"`
	Public      bool      `json:"publicSet"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Card struct {
	Id    int64  `json:"id"`
	SetId int64  `json:"setId"`
	Front string `json:"frontText"`
	Back  string `json:"backText"`
}

// SharedSet records that a set is visible to a user other than its owner.
type SharedSet struct {
	UserId int64 `json:"userId"`
	SetId  int64 `json:"setId"`
}

// Report is an append-only record of a flagged set.
type Report struct {
	Id        int64     `json:"id"`
	SetId     int64     `json:"setId"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}
