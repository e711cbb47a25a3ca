package fakeapi

import (
	"fmt"
	"strings"

	"github.com/yjuanrodriguez/pw-api-testing/servicedef"
)

const (
	emailDomain     = "reqres.in"
	avatarURLFormat = "https://reqres.in/img/faces/%d-image.jpg"
)

var userNames = [][2]string{
	{"George", "Bluth"},
	{"Janet", "Weaver"},
	{"Emma", "Wong"},
	{"Eve", "Holt"},
	{"Charles", "Morris"},
	{"Tracey", "Ramos"},
	{"Michael", "Lawson"},
	{"Lindsay", "Ferguson"},
	{"Tobias", "Funke"},
	{"Byron", "Fields"},
	{"George", "Edwards"},
	{"Rachel", "Howell"},
}

// Users returns the fixed set of users that the API serves, in ID order.
func Users() []servicedef.User {
	ret := make([]servicedef.User, 0, len(userNames))
	for i, n := range userNames {
		id := i + 1
		ret = append(ret, servicedef.User{
			ID:        id,
			Email:     strings.ToLower(n[0]+"."+n[1]) + "@" + emailDomain,
			FirstName: n[0],
			LastName:  n[1],
			Avatar:    fmt.Sprintf(avatarURLFormat, id),
		})
	}
	return ret
}

func findUserByEmail(users []servicedef.User, email string) (servicedef.User, bool) {
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return servicedef.User{}, false
}

func findUserByID(users []servicedef.User, id int) (servicedef.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return servicedef.User{}, false
}

// totalPages returns the number of pages needed for all users. perPage must be positive.
func totalPages(users []servicedef.User, perPage int) int {
	if len(users) == 0 {
		return 0
	}
	return (len(users)-1)/perPage + 1
}

// pageOf returns the users on a 1-based page. Pages past the end are empty. page and perPage
// must be positive.
func pageOf(users []servicedef.User, page, perPage int) []servicedef.User {
	if page > totalPages(users, perPage) {
		return []servicedef.User{}
	}
	start := (page - 1) * perPage
	end := len(users)
	if perPage < end-start {
		end = start + perPage
	}
	return users[start:end]
}
