package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dkovalov/addressbook/internal/book"
	"github.com/dkovalov/addressbook/internal/domain"
	"github.com/dkovalov/addressbook/internal/render"
)

// install registers every command. Handlers resolve contacts by name through
// the facade and hand result slices to the render package; they hold no
// state of their own.
func (r *Registry) install() {
	add := func(c Command) { r.commands[c.Name] = c }

	add(Command{Name: "hello", Usage: "hello",
		run: func([]string) (string, error) { return "How can I help you?", nil }})

	add(Command{Name: "add", Usage: "add <name> <phone>", MinArgs: 2,
		run: r.addContact})
	add(Command{Name: "remove-contact", Usage: "remove-contact <name>", MinArgs: 1,
		run: r.removeContact})
	add(Command{Name: "change", Usage: "change <name> <old-phone> <new-phone>", MinArgs: 3,
		run: r.changePhone})
	add(Command{Name: "remove-phone", Usage: "remove-phone <name> <phone>", MinArgs: 2,
		run: r.removePhone})
	add(Command{Name: "phone", Usage: "phone <name>", MinArgs: 1,
		run: r.showContact})
	add(Command{Name: "all", Usage: "all",
		run: r.showAll})

	add(Command{Name: "add-birthday", Usage: "add-birthday <name> <DD.MM.YYYY>", MinArgs: 2,
		run: r.addBirthday})
	add(Command{Name: "show-birthday", Usage: "show-birthday <name>", MinArgs: 1,
		run: r.showBirthday})
	add(Command{Name: "birthdays", Usage: "birthdays [days]",
		run: r.birthdays})

	add(Command{Name: "add-email", Usage: "add-email <name> <email>", MinArgs: 2,
		run: r.addEmail})
	add(Command{Name: "add-address", Usage: "add-address <name> <address...>", MinArgs: 2,
		run: r.addAddress})

	add(Command{Name: "add-note", Usage: "add-note <name> <text...> [#tag ...]", MinArgs: 2,
		run: r.addNote})
	add(Command{Name: "edit-note", Usage: "edit-note <name> <note-id> <text...>", MinArgs: 3,
		run: r.editNote})
	add(Command{Name: "remove-note", Usage: "remove-note <name> <note-id>", MinArgs: 2,
		run: r.removeNote})
	add(Command{Name: "show-notes", Usage: "show-notes <name>", MinArgs: 1,
		run: r.showNotes})
	add(Command{Name: "sort-notes", Usage: "sort-notes <name|all> <tag|text>", MinArgs: 2,
		run: r.sortNotes})

	add(Command{Name: "find-notes", Usage: "find-notes <tag>", MinArgs: 1,
		run: r.findByTag})
	add(Command{Name: "search", Usage: "search <query> [name|phone|email|tag ...]", MinArgs: 1,
		run: r.search})

	add(Command{Name: "save", Usage: "save",
		run: func([]string) (string, error) {
			if err := r.assistant.Save(); err != nil {
				return "", err
			}
			return "Address book saved.", nil
		}})
	add(Command{Name: "exit", Usage: "exit", Terminal: true,
		run: func([]string) (string, error) { return "Good bye!", nil }})
	add(Command{Name: "close", Usage: "close", Terminal: true,
		run: func([]string) (string, error) { return "Good bye!", nil }})
}

// addContact creates the contact when needed and attaches the phone, the
// way the upstream "add" behaves for existing names.
func (r *Registry) addContact(args []string) (string, error) {
	name, phone := args[0], args[1]
	msg := "Contact updated."
	rec, err := r.assistant.FindContact(name)
	if errors.Is(err, domain.ErrNotFound) {
		rec, err = r.assistant.AddContact(name)
		msg = "Contact added."
	}
	if err != nil {
		return "", err
	}
	if err := r.assistant.AddPhone(rec.ID, phone); err != nil {
		return "", err
	}
	return msg, nil
}

func (r *Registry) removeContact(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	if err := r.assistant.RemoveContact(rec.ID); err != nil {
		return "", err
	}
	return "Contact removed.", nil
}

func (r *Registry) changePhone(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	if err := r.assistant.EditPhone(rec.ID, args[1], args[2]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s updated.", rec.Name), nil
}

func (r *Registry) removePhone(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	if err := r.assistant.RemovePhone(rec.ID, args[1]); err != nil {
		return "", err
	}
	return "Phone removed.", nil
}

func (r *Registry) showContact(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	return render.Records([]domain.Record{rec}), nil
}

func (r *Registry) showAll([]string) (string, error) {
	records := r.assistant.Contacts()
	if len(records) == 0 {
		return "Sorry, your address book is empty.", nil
	}
	return render.Records(records), nil
}

func (r *Registry) addBirthday(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	if err := r.assistant.SetBirthday(rec.ID, args[1]); err != nil {
		return "", err
	}
	return "Contact birthday added.", nil
}

func (r *Registry) showBirthday(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	if rec.Birthday == nil {
		return "", fmt.Errorf("command.showBirthday: %w: no birthday recorded", domain.ErrNotFound)
	}
	return rec.Birthday.Format(domain.BirthdayLayout), nil
}

func (r *Registry) birthdays(args []string) (string, error) {
	days := r.birthdayDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("command.birthdays: %w: days must be a number", domain.ErrValidation)
		}
		days = n
	}
	reminders, err := r.assistant.UpcomingBirthdays(days)
	if err != nil {
		return "", err
	}
	if len(reminders) == 0 {
		return "No upcoming birthdays.", nil
	}
	return render.Reminders(reminders), nil
}

func (r *Registry) addEmail(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	if err := r.assistant.SetEmail(rec.ID, args[1]); err != nil {
		return "", err
	}
	return "Contact email added.", nil
}

func (r *Registry) addAddress(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	if err := r.assistant.SetAddress(rec.ID, strings.Join(args[1:], " ")); err != nil {
		return "", err
	}
	return "Contact address added.", nil
}

// addNote treats trailing words starting with "#" as tags and the rest as
// the note text.
func (r *Registry) addNote(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	var words, tags []string
	for _, arg := range args[1:] {
		if strings.HasPrefix(arg, "#") {
			tags = append(tags, strings.TrimPrefix(arg, "#"))
		} else {
			words = append(words, arg)
		}
	}
	note, err := r.assistant.AddNote(rec.ID, strings.Join(words, " "), tags)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Note %s added.", shortID(note.ID)), nil
}

func (r *Registry) editNote(args []string) (string, error) {
	rec, noteID, err := r.resolveNote(args[0], args[1])
	if err != nil {
		return "", err
	}
	if err := r.assistant.EditNote(rec.ID, noteID, strings.Join(args[2:], " ")); err != nil {
		return "", err
	}
	return "Note updated.", nil
}

func (r *Registry) removeNote(args []string) (string, error) {
	rec, noteID, err := r.resolveNote(args[0], args[1])
	if err != nil {
		return "", err
	}
	if err := r.assistant.RemoveNote(rec.ID, noteID); err != nil {
		return "", err
	}
	return "Note removed.", nil
}

func (r *Registry) showNotes(args []string) (string, error) {
	rec, err := r.assistant.FindContact(args[0])
	if err != nil {
		return "", err
	}
	notes, err := r.assistant.Notes(rec.ID)
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		return fmt.Sprintf("No notes for %s.", rec.Name), nil
	}
	return render.Notes(notes), nil
}

func (r *Registry) sortNotes(args []string) (string, error) {
	var key book.NoteSortKey
	switch strings.ToLower(args[1]) {
	case "tag":
		key = book.SortNotesByTag
	case "text":
		key = book.SortNotesByText
	default:
		return "", fmt.Errorf("command.sortNotes: %w: sort key must be tag or text", domain.ErrValidation)
	}

	var notes []domain.Note
	if strings.EqualFold(args[0], "all") {
		notes = r.assistant.AllNotesSorted(key)
	} else {
		rec, err := r.assistant.FindContact(args[0])
		if err != nil {
			return "", err
		}
		if notes, err = r.assistant.SortNotes(rec.ID, key); err != nil {
			return "", err
		}
	}
	if len(notes) == 0 {
		return "No notes yet.", nil
	}
	return render.Notes(notes), nil
}

func (r *Registry) findByTag(args []string) (string, error) {
	var records []domain.Record
	for rec := range r.assistant.Search(args[0], book.ScopeTag) {
		records = append(records, rec)
	}
	if len(records) == 0 {
		return "No contacts with that tag.", nil
	}
	return render.Records(records), nil
}

func (r *Registry) search(args []string) (string, error) {
	scopes := book.Scope(0)
	for _, arg := range args[1:] {
		switch strings.ToLower(arg) {
		case "name":
			scopes |= book.ScopeName
		case "phone":
			scopes |= book.ScopePhone
		case "email":
			scopes |= book.ScopeEmail
		case "tag":
			scopes |= book.ScopeTag
		default:
			return "", fmt.Errorf("command.search: %w: unknown scope %q", domain.ErrValidation, arg)
		}
	}
	if scopes == 0 {
		scopes = book.ScopeAll
	}
	var records []domain.Record
	for rec := range r.assistant.Search(args[0], scopes) {
		records = append(records, rec)
	}
	if len(records) == 0 {
		return "Nothing found.", nil
	}
	return render.Records(records), nil
}

// resolveNote finds a contact by name and one of its notes by id prefix.
// Accepting a prefix lets users type the short id shown in note tables;
// an ambiguous prefix is rejected.
func (r *Registry) resolveNote(name, idArg string) (domain.Record, uuid.UUID, error) {
	rec, err := r.assistant.FindContact(name)
	if err != nil {
		return domain.Record{}, uuid.Nil, err
	}
	prefix := strings.ToLower(idArg)
	var found uuid.UUID
	matched := 0
	for _, n := range rec.Notes {
		if strings.HasPrefix(n.ID.String(), prefix) {
			found = n.ID
			matched++
		}
	}
	switch matched {
	case 1:
		return rec, found, nil
	case 0:
		return domain.Record{}, uuid.Nil, fmt.Errorf("command.resolveNote: %w: note %s", domain.ErrNotFound, idArg)
	default:
		return domain.Record{}, uuid.Nil, fmt.Errorf("command.resolveNote: %w: note id %s is ambiguous", domain.ErrValidation, idArg)
	}
}

// shortID is the 8-character id prefix shown in tables.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
