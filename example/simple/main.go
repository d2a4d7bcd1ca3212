// Command simple serves a tiny in-memory roster over GraphQL, useful as a
// minimal end-to-end smoke test of schemabuilder registration plus the
// gqlrun HTTP façade.
package main

import (
	"net/http"

	"github.com/shyptr/gqlrun"
	"github.com/shyptr/gqlrun/schemabuilder"
)

type Identity int

const (
	Student Identity = iota
	Teacher
)

type Person struct {
	Name     string
	Identity Identity
}

var db = []*Person{
	{"john", Student},
	{"mark", Student},
	{"lisa", Teacher},
}

func registerPerson(s *schemabuilder.Schema) {
	person := s.Object("Person", Person{}, "each person has an identity, student or teacher")
	person.FieldFunc("name", func(p Person) string { return p.Name })
	person.FieldFunc("identity", func(p Person) Identity { return p.Identity })
	person.FieldFunc("age", func(p Person) int {
		switch p.Name {
		case "john":
			return 15
		case "mark":
			return 17
		case "lisa":
			return 30
		default:
			return 0
		}
	}, "field which does not exist in struct, named age, return int")
}

func registerEnum(s *schemabuilder.Schema) {
	s.Enum("Identity", Identity(0), map[string]interface{}{
		"STUDENT": Student,
		"TEACHER": Teacher,
	}, "identity enum")
}

type nameArgs struct {
	Name string `json:"name"`
}

type identityArgs struct {
	Identity Identity `json:"identity"`
}

type addArgs struct {
	Name     string   `json:"name"`
	Identity Identity `json:"identity"`
}

func registerOperations(s *schemabuilder.Schema) {
	query := s.Query()
	query.FieldFunc("all", func() []*Person { return db }, "get all person from db")
	query.FieldFunc("queryByName", func(args nameArgs) []*Person {
		var persons []*Person
		for _, p := range db {
			if p.Name == args.Name {
				persons = append(persons, p)
			}
		}
		return persons
	}, "get person from db by name")
	query.FieldFunc("queryByIdentity", func(args identityArgs) []*Person {
		var persons []*Person
		for _, p := range db {
			if p.Identity == args.Identity {
				persons = append(persons, p)
			}
		}
		return persons
	}, "get person from db by identity")

	mutation := s.Mutation()
	mutation.FieldFunc("add", func(args addArgs) *Person {
		p := &Person{Name: args.Name, Identity: args.Identity}
		db = append(db, p)
		return p
	}, "add a person into db")
}

func main() {
	s := schemabuilder.NewSchema()
	s.EnableIntrospection = true
	registerEnum(s)
	registerPerson(s)
	registerOperations(s)

	built, err := s.Build()
	if err != nil {
		panic(err)
	}

	handler := gqlrun.NewHandler(built)
	http.Handle("/", gqlrun.GraphiQLHandler("/query"))
	http.Handle("/query", handler)
	http.ListenAndServe(":3000", nil)
}
