package model

import "time"

// Container is the located catalog-server container
type Container struct {
	ID      string
	Name    string
	Image   string
	Status  string
	State   string
	Created time.Time
	Ports   []Port
}

// Port is a published container port
type Port struct {
	Private int
	Public  int
	Type    string
}
