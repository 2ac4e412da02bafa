package entities

// Product identifies a commodity by name. Two Product values with the
// same name are the same product wherever they appear.
type Product string

// Building represents the machine type a recipe runs in
type Building string
