// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"strings"
)

// Sex selects the population a life table describes.
type Sex string

const (
	SexAll    Sex = "a"
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

// ParseSex accepts either the single letter form or the full word, in any case.
func ParseSex(v string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "a", "all", "both":
		return SexAll, nil
	case "m", "male":
		return SexMale, nil
	case "f", "female":
		return SexFemale, nil
	default:
		return "", fmt.Errorf("invalid sex '%s'", v)
	}
}

// Country is an entry of the life table country index.
type Country struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LifeTableRow is the mortality data for a single age.  The backend serializes its
// decimal columns as strings, so the probabilities are decoded with weak typing.
type LifeTableRow struct {
	Age                   int     `json:"age"`
	Probability           float64 `json:"probability"`
	CumulativeProbability float64 `json:"cumulative_probability"`
}

// Series is an entry of the mortality series index.
type Series struct {
	ID   int      `json:"id"`
	Tags []string `json:"tags"`
}

// Status is the body of the account endpoints.
type Status struct {
	Status string `json:"status"`
}

// LifeTableQuery selects a single life table.
type LifeTableQuery struct {
	Country string `schema:"country"`
	Sex     Sex    `schema:"sex"`
	Year    int    `schema:"year"`
}

type yearsQuery struct {
	Country string `schema:"country"`
}

type credentials struct {
	Email    string `schema:"email"`
	Password string `schema:"password"`
}
