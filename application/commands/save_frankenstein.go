package commands

import "errors"

// SaveFrankensteinCommand combines two ingredients into a product concept and stores it.
// When the ingredients are empty the handler draws a random pair.
type SaveFrankensteinCommand struct {
	UserID           string `json:"user_id" validate:"required"`
	DocumentID       string `json:"document_id" validate:"required,uuid"`
	FirstIngredient  string `json:"first_ingredient,omitempty" validate:"omitempty,min=1,max=100"`
	SecondIngredient string `json:"second_ingredient,omitempty" validate:"omitempty,min=1,max=100"`
}

// Validate validates the command
func (cmd SaveFrankensteinCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.DocumentID == "" {
		return errors.New("document ID is required")
	}
	// Ingredients come as a pair or not at all
	if (cmd.FirstIngredient == "") != (cmd.SecondIngredient == "") {
		return errors.New("ingredients must be provided as a pair")
	}
	if cmd.FirstIngredient != "" && cmd.FirstIngredient == cmd.SecondIngredient {
		return errors.New("ingredients must be distinct")
	}
	return nil
}
