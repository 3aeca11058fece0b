package gfx

import "image/color"

// Sprite names shared by the presentation components.
const (
	SprCountdown = "countdown"
	SprWinner    = "winner"
	SprNoWinner  = "no_winner"
	SprCar       = "car"
	SprCarFlip   = "car_flipped"
	SprCrown     = "crown"

	// DefaultCharacter stands in for a character sprite the atlas lacks.
	DefaultCharacter = "frog"
	// DefaultDialogue is used for any character without its own portrait.
	DefaultDialogue = "dialogue_frog"
)

// DialogueSprite maps a character sprite name to its dialogue portrait.
func DialogueSprite(character string) string {
	return "dialogue_" + character
}

// Characters lists the playable character sprite names.
var Characters = []string{"frog", "mouse", "bird", "snake"}

// Catalog is the built-in sprite list, relative to the asset root.
var Catalog = []Spec{
	{Name: "dialogue_frog", Path: "sprites/spr_frog_dialogue.png", FrameW: 60, FrameH: 46, Frames: 2, Placeholder: Hex("#4caf50")},
	{Name: "dialogue_mouse", Path: "sprites/spr_mouse_dialogue_cute.png", FrameW: 60, FrameH: 64, Frames: 2, Placeholder: Hex("#9e9e9e")},
	{Name: "dialogue_bird", Path: "sprites/spr_bird_dialogue_cute.png", FrameW: 60, FrameH: 64, Frames: 2, Placeholder: Hex("#2196f3")},
	{Name: "dialogue_snake", Path: "sprites/spr_snake_dialogue.png", FrameW: 90, FrameH: 72, Frames: 2, Placeholder: Hex("#8bc34a")},

	{Name: "frog", Path: "sprites/spr_frog.png", FrameW: 8, FrameH: 8, Frames: 2, Placeholder: Hex("#4caf50")},
	{Name: "mouse", Path: "sprites/spr_mouse.png", FrameW: 8, FrameH: 8, Frames: 2, Placeholder: Hex("#9e9e9e")},
	{Name: "bird", Path: "sprites/spr_bird.png", FrameW: 8, FrameH: 8, Frames: 2, Placeholder: Hex("#2196f3")},
	{Name: "snake", Path: "sprites/spr_snake.png", FrameW: 8, FrameH: 8, Frames: 2, Placeholder: Hex("#8bc34a")},

	{Name: SprCountdown, Path: "sprites/spr_countdown.png", FrameW: 48, FrameH: 32, Frames: 4, Placeholder: color.White},
	{Name: SprWinner, Path: "sprites/spr_winner.png", FrameW: 113, FrameH: 32, Frames: 1, Placeholder: Hex("#ffd54f")},
	{Name: SprNoWinner, Path: "sprites/spr_no_winner.png", FrameW: 113, FrameH: 64, Frames: 1, Placeholder: Hex("#b0bec5")},
	{Name: SprCar, Path: "sprites/spr_car_flipped.png", FrameW: 24, FrameH: 16, Frames: 1, Placeholder: Hex("#e53935")},
	{Name: SprCarFlip, Path: "sprites/spr_car.png", FrameW: 24, FrameH: 16, Frames: 1, Placeholder: Hex("#e53935")},
	{Name: SprCrown, Path: "sprites/spr_crown.png", FrameW: 8, FrameH: 8, Frames: 1, Placeholder: Hex("#ffd700")},
}

// Describe builds an atlas of sized sprites without loading any pixels.
func Describe(specs []Spec, fallback string) *Atlas {
	sprites := make([]*Sprite, 0, len(specs))
	for _, sp := range specs {
		sprites = append(sprites, NewSprite(sp.Name, sp.FrameW, sp.FrameH, sp.Frames))
	}
	return NewAtlas(fallback, sprites...)
}
