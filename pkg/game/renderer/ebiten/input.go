package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "mcrogueface/pkg/engine/input"
)

type keyCode struct {
	key  ebiten.Key
	code string
}

// keyCodes translates ebiten keys to the codes the input bindings use.
// Order decides which key wins when several go down in one tick.
var keyCodes = []keyCode{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyK, "k"},
	{ebiten.KeyL, "l"},
	{ebiten.KeyJ, "j"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyU, "u"},
	{ebiten.KeyN, "n"},
	{ebiten.KeyB, "b"},
	{ebiten.KeyY, "y"},
	{ebiten.KeyNumpad1, "1"},
	{ebiten.KeyNumpad2, "2"},
	{ebiten.KeyNumpad3, "3"},
	{ebiten.KeyNumpad4, "4"},
	{ebiten.KeyNumpad5, "5"},
	{ebiten.KeyNumpad6, "6"},
	{ebiten.KeyNumpad7, "7"},
	{ebiten.KeyNumpad8, "8"},
	{ebiten.KeyNumpad9, "9"},
	{ebiten.KeyDigit1, "1"},
	{ebiten.KeyDigit2, "2"},
	{ebiten.KeyDigit3, "3"},
	{ebiten.KeyDigit4, "4"},
	{ebiten.KeyDigit5, "5"},
	{ebiten.KeyDigit6, "6"},
	{ebiten.KeyDigit7, "7"},
	{ebiten.KeyDigit8, "8"},
	{ebiten.KeyDigit9, "9"},
	{ebiten.KeyPeriod, "."},
	{ebiten.KeyG, "g"},
	{ebiten.KeyF, "f"},
	{ebiten.KeyR, "r"},
	{ebiten.KeyT, "t"},
	{ebiten.KeyEqual, "="},
	{ebiten.KeyNumpadAdd, "+"},
	{ebiten.KeyMinus, "-"},
	{ebiten.KeyNumpadSubtract, "-"},
	{ebiten.KeyF1, "f1"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "escape"},
}

// checkInput returns the intent of the first bound key pressed this tick.
func checkInput() engineinput.Intent {
	for _, kc := range keyCodes {
		if !inpututil.IsKeyJustPressed(kc.key) {
			continue
		}
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
			Device: engineinput.DeviceKeyboard,
			Code:   kc.code,
		}))
		if intent.Action != engineinput.ActionNone {
			return intent
		}
	}
	return engineinput.Intent{Action: engineinput.ActionNone}
}
