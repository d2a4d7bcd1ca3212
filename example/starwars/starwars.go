// Command starwars serves the canonical Star Wars trilogy dataset as a
// GraphQL API, exercising interfaces, enums, and custom input objects
// against an in-memory store.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/shyptr/gqlrun"
	"github.com/shyptr/gqlrun/schemabuilder"
)

type Episode int

const (
	NewHope Episode = iota + 4
	Empire
	Jedi
)

// Character is satisfied by Human and Droid purely as a registration-time
// marker: Build reads its method set to know which field names every
// implementing object must register.
type Character interface {
	Id() string
	Name() string
	Friends() []Character
	AppearsIn() []Episode
	SecretBackstory() (*string, error)
}

type Human struct {
	ID         string
	FullName   string
	FriendIDs  []string
	AppearIn   []Episode
	HomePlanet *string
}

type Droid struct {
	ID              string
	FullName        string
	FriendIDs       []string
	AppearIn        []Episode
	PrimaryFunction string
}

func (h *Human) Id() string           { return h.ID }
func (h *Human) Name() string         { return h.FullName }
func (h *Human) Friends() []Character { return friendsOf(h.FriendIDs) }
func (h *Human) AppearsIn() []Episode { return h.AppearIn }
func (h *Human) SecretBackstory() (*string, error) {
	return nil, errors.New("secretBackstory is secret")
}

func (d *Droid) Id() string           { return d.ID }
func (d *Droid) Name() string         { return d.FullName }
func (d *Droid) Friends() []Character { return friendsOf(d.FriendIDs) }
func (d *Droid) AppearsIn() []Episode { return d.AppearIn }
func (d *Droid) SecretBackstory() (*string, error) {
	return nil, errors.New("secretBackstory is secret")
}

var (
	luke   = &Human{ID: "1000", FullName: "Luke Skywalker", FriendIDs: []string{"1002", "1003", "2000", "2001"}, AppearIn: []Episode{NewHope, Empire, Jedi}, HomePlanet: strPtr("Tatooine")}
	vader  = &Human{ID: "1001", FullName: "Darth Vader", FriendIDs: []string{"1004"}, AppearIn: []Episode{NewHope, Empire, Jedi}, HomePlanet: strPtr("Tatooine")}
	han    = &Human{ID: "1002", FullName: "Han Solo", FriendIDs: []string{"1000", "1003", "2001"}, AppearIn: []Episode{NewHope, Empire, Jedi}}
	leia   = &Human{ID: "1003", FullName: "Leia Organa", FriendIDs: []string{"1000", "1002", "2000", "2001"}, AppearIn: []Episode{NewHope, Empire, Jedi}, HomePlanet: strPtr("Alderaan")}
	tarkin = &Human{ID: "1004", FullName: "Wilhuff Tarkin", FriendIDs: []string{"1001"}, AppearIn: []Episode{NewHope}}

	humanData = map[string]*Human{"1000": luke, "1001": vader, "1002": han, "1003": leia, "1004": tarkin}

	threepio = &Droid{ID: "2000", FullName: "C-3PO", FriendIDs: []string{"1000", "1002", "1003", "2001"}, AppearIn: []Episode{NewHope, Empire, Jedi}, PrimaryFunction: "Protocol"}
	artoo    = &Droid{ID: "2001", FullName: "R2-D2", FriendIDs: []string{"1000", "1002", "1003"}, AppearIn: []Episode{NewHope, Empire, Jedi}, PrimaryFunction: "Astromech"}

	droidData = map[string]*Droid{"2000": threepio, "2001": artoo}
)

func strPtr(s string) *string { return &s }

func getCharacter(id string) Character {
	if c, ok := humanData[id]; ok {
		return c
	}
	if c, ok := droidData[id]; ok {
		return c
	}
	return nil
}

func friendsOf(ids []string) []Character {
	var out []Character
	for _, id := range ids {
		if c := getCharacter(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

type heroArgs struct {
	Episode *Episode `json:"episode"`
}

func getHero(args heroArgs) Character {
	if args.Episode != nil && *args.Episode == Empire {
		return luke
	}
	return artoo
}

type idArgs struct {
	ID string `json:"id"`
}

func main() {
	s := schemabuilder.NewSchema()
	s.EnableIntrospection = true

	s.Enum("Episode", Episode(0), map[string]interface{}{
		"NEW_HOPE": NewHope,
		"EMPIRE":   Empire,
		"JEDI":     Jedi,
	}, "One of the films in the Star Wars Trilogy")
	s.EnumValueDesc(Episode(0), "NEW_HOPE", "Released in 1977.")
	s.EnumValueDesc(Episode(0), "EMPIRE", "Released in 1980.")
	s.EnumValueDesc(Episode(0), "JEDI", "Released in 1983.")

	s.Interface("Character", (*Character)(nil), func(ctx context.Context, source interface{}) string {
		switch source.(type) {
		case *Human:
			return "Human"
		case *Droid:
			return "Droid"
		default:
			return ""
		}
	}, "A character in the Star Wars Trilogy")

	human := s.Object("Human", Human{}, "A humanoid creature in the Star Wars universe.")
	human.FieldFunc("id", func(h Human) string { return h.ID })
	human.FieldFunc("name", func(h Human) string { return h.FullName })
	human.FieldFunc("friends", func(h Human) []Character { return friendsOf(h.FriendIDs) }, "The friends of the human, or an empty list if they have none.")
	human.FieldFunc("appearsIn", func(h Human) []Episode { return h.AppearIn }, "Which movies they appear in.")
	human.FieldFunc("secretBackstory", func(h Human) (*string, error) { return nil, errors.New("secretBackstory is secret") })
	human.FieldFunc("homePlanet", func(h Human) *string { return h.HomePlanet }, "The home planet of the human, or null if unknown.")
	human.Implements("Character")

	droid := s.Object("Droid", Droid{}, "A mechanical creature in the Star Wars universe.")
	droid.FieldFunc("id", func(d Droid) string { return d.ID })
	droid.FieldFunc("name", func(d Droid) string { return d.FullName })
	droid.FieldFunc("friends", func(d Droid) []Character { return friendsOf(d.FriendIDs) }, "The friends of the droid, or an empty list if they have none.")
	droid.FieldFunc("appearsIn", func(d Droid) []Episode { return d.AppearIn }, "Which movies they appear in.")
	droid.FieldFunc("secretBackstory", func(d Droid) (*string, error) { return nil, errors.New("secretBackstory is secret") })
	droid.FieldFunc("primaryFunction", func(d Droid) string { return d.PrimaryFunction }, "The primary function of the droid.")
	droid.Implements("Character")

	query := s.Query()
	query.FieldFunc("hero", getHero, "If omitted, returns the hero of the whole saga. If provided, returns the hero of that particular episode.")
	query.FieldFunc("human", func(args idArgs) *Human { return humanData[args.ID] })
	query.FieldFunc("droid", func(args idArgs) *Droid { return droidData[args.ID] })

	built, err := s.Build()
	if err != nil {
		log.Fatal(err)
	}

	handler := gqlrun.NewHandler(built)
	http.Handle("/", gqlrun.GraphiQLHandler("/query"))
	http.Handle("/query", handler)
	log.Fatal(http.ListenAndServe(":3000", nil))
}
