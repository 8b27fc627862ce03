package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magearena/server/internal/persistence"
	apperrors "github.com/magearena/server/internal/platform/errors"
)

// Character repository methods. The wide row is always written and read as a
// complete unit; the scan/bind helpers below are the only places that know
// the column layout.

type rowScanner interface {
	Scan(dest ...any) error
}

// scanCharacter reads one row in the catalog's SELECT column order.
func scanCharacter(row rowScanner) (persistence.Character, error) {
	var c persistence.Character
	dest := []any{
		&c.CharID, &c.AccountID, &c.Slot, &c.Name,
		&c.Agility, &c.Constitution, &c.Memory, &c.Reasoning, &c.Discipline,
		&c.Empathy, &c.Intuition, &c.Presence, &c.Quickness, &c.Strength,
		&c.SpentStat, &c.BonusStat, &c.BonusSpent,
	}
	for i := range c.Abilities {
		dest = append(dest, &c.Abilities[i].List)
	}
	for i := range c.Abilities {
		dest = append(dest, &c.Abilities[i].Level)
	}
	dest = append(dest, &c.Class, &c.Level, &c.SpellPicks, &c.Model, &c.Experience)
	for i := range c.SpellKey {
		dest = append(dest, &c.SpellKey[i])
	}
	dest = append(dest, &c.OpLevel)

	if err := row.Scan(dest...); err != nil {
		return persistence.Character{}, err
	}
	return c, nil
}

// characterValues maps the mutable character columns to named parameters.
// Identity columns (charid, accountid, slot) are added by the callers that
// bind them.
func characterValues(c persistence.Character) map[string]any {
	values := map[string]any{
		"name":         c.Name,
		"agility":      c.Agility,
		"constitution": c.Constitution,
		"memory":       c.Memory,
		"reasoning":    c.Reasoning,
		"discipline":   c.Discipline,
		"empathy":      c.Empathy,
		"intuition":    c.Intuition,
		"presence":     c.Presence,
		"quickness":    c.Quickness,
		"strength":     c.Strength,
		"spent_stat":   c.SpentStat,
		"bonus_stat":   c.BonusStat,
		"bonus_spent":  c.BonusSpent,
		"class":        c.Class,
		"level":        c.Level,
		"spell_picks":  c.SpellPicks,
		"model":        c.Model,
		"experience":   c.Experience,
		"oplevel":      c.OpLevel,
	}
	for i, slot := range c.Abilities {
		values[fmt.Sprintf("list_%d", i+1)] = slot.List
		values[fmt.Sprintf("list_level_%d", i+1)] = slot.Level
	}
	for i, key := range c.SpellKey {
		values[fmt.Sprintf("spell_key_%d", i+1)] = key
	}
	return values
}

func (s *Store) findCharacter(ctx context.Context, op, query string, values map[string]any) (persistence.Character, error) {
	tpl := s.template(query)
	args, err := bind(tpl, values)
	if err != nil {
		return persistence.Character{}, err
	}

	var found persistence.Character
	err = s.withConn(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, tpl.SQL, args...)
		c, err := scanCharacter(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return persistence.ErrNotFound
			}
			return err
		}
		found = c
		return nil
	})
	if err != nil {
		return persistence.Character{}, err
	}
	return found, nil
}

// FindBySlot fetches the character occupying a roster slot.
func (s *Store) FindBySlot(ctx context.Context, accountID int64, slot int) (persistence.Character, error) {
	return s.findCharacter(ctx, "find character by slot", "CharacterFindBySlot", map[string]any{
		"accountid": accountID,
		"slot":      slot,
	})
}

// FindByName fetches a character by its globally unique name.
func (s *Store) FindByName(ctx context.Context, name string) (persistence.Character, error) {
	return s.findCharacter(ctx, "find character by name", "CharacterFindByName", map[string]any{
		"name": name,
	})
}

// FindByNameAndAccount fetches a character only when the account owns it.
func (s *Store) FindByNameAndAccount(ctx context.Context, name string, accountID int64) (persistence.Character, error) {
	return s.findCharacter(ctx, "find character by name and account", "CharacterFindByNameAndAccount", map[string]any{
		"name":      name,
		"accountid": accountID,
	})
}

// TopByClass returns the class leaderboard ordered by experience descending.
// Operator characters never appear.
func (s *Store) TopByClass(ctx context.Context, class int, limit int) ([]persistence.Character, error) {
	if limit <= 0 {
		limit = persistence.DefaultLeaderboardSize
	}
	tpl := s.template("CharacterTopByClass")
	args, err := bind(tpl, map[string]any{
		"class": class,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}

	var leaders []persistence.Character
	err = s.withConn(ctx, "top characters by class", func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, tpl.SQL, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanCharacter(rows)
			if err != nil {
				return err
			}
			leaders = append(leaders, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return leaders, nil
}

// SaveNew inserts a full character row and returns the assigned charid.
func (s *Store) SaveNew(ctx context.Context, c persistence.Character) (int64, error) {
	if strings.TrimSpace(c.Name) == "" {
		return 0, apperrors.New(apperrors.CodeInvalidCharacter, "character name is required")
	}

	values := characterValues(c)
	values["accountid"] = c.AccountID
	values["slot"] = c.Slot

	tpl := s.template("CharacterSaveNew")
	args, err := bind(tpl, values)
	if err != nil {
		return 0, err
	}

	var charID int64
	err = s.withConn(ctx, "save new character", func(ctx context.Context, conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, tpl.SQL, args...)
		if err != nil {
			switch {
			case isUniqueViolation(err, "characters.name"):
				return apperrors.WithMetadata(apperrors.CodeDuplicateName,
					"character name already taken",
					map[string]string{"name": c.Name})
			case isUniqueViolation(err, "characters.accountid"):
				return apperrors.WithMetadata(apperrors.CodeSlotOccupied,
					"character slot already occupied",
					map[string]string{"slot": fmt.Sprintf("%d", c.Slot)})
			}
			return err
		}
		charID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return charID, nil
}

// SaveExisting rewrites the full row keyed by charid. Saving a character
// that was never created is an error, not a silent insert.
func (s *Store) SaveExisting(ctx context.Context, c persistence.Character) error {
	if c.CharID <= 0 {
		return apperrors.New(apperrors.CodeInvalidCharacter, "character charid is required")
	}

	values := characterValues(c)
	values["charid"] = c.CharID

	tpl := s.template("CharacterSaveExisting")
	args, err := bind(tpl, values)
	if err != nil {
		return err
	}

	return s.withConn(ctx, "save existing character", func(ctx context.Context, conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, tpl.SQL, args...)
		if err != nil {
			if isUniqueViolation(err, "characters.name") {
				return apperrors.WithMetadata(apperrors.CodeDuplicateName,
					"character name already taken",
					map[string]string{"name": c.Name})
			}
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

// DeleteBySlot removes exactly one character owned by the account. Deleting
// zero rows is reported so callers can detect stale references.
func (s *Store) DeleteBySlot(ctx context.Context, accountID int64, name string) error {
	tpl := s.template("CharacterDeleteBySlot")
	args, err := bind(tpl, map[string]any{
		"accountid": accountID,
		"name":      name,
	})
	if err != nil {
		return err
	}

	return s.withConn(ctx, "delete character", func(ctx context.Context, conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, tpl.SQL, args...)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}
