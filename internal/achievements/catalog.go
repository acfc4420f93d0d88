// Package achievements tracks achievement progress and cumulative player
// totals from simulation events.
package achievements

// Achievement identifiers.
const (
	FirstJump      = "firstJump"
	Score100       = "score100"
	Score500       = "score500"
	Score1000      = "score1000"
	Score5000      = "score5000"
	Jumper         = "jumper"
	Ducker         = "ducker"
	Survivor       = "survivor"
	Combo10        = "combo10"
	Combo25        = "combo25"
	SpeedDemon     = "speedDemon"
	NightRunner    = "nightRunner"
	PowerUser      = "powerUser"
	PerfectPattern = "perfectPattern"
	Marathoner     = "marathoner"
	HardcoreGamer  = "hardcoreGamer"
	InsanePlayer   = "insanePlayer"
)

// Definition is the static description of an achievement.
type Definition struct {
	ID          string
	Title       string
	Description string
	Target      int
}

// Catalog lists every achievement in display order.
var Catalog = []Definition{
	{FirstJump, "First Leap", "Make your first jump", 1},
	{Score100, "Century", "Score 100 points", 100},
	{Score500, "High Flyer", "Score 500 points", 500},
	{Score1000, "Millennium", "Score 1000 points", 1000},
	{Score5000, "Legend", "Score 5000 points", 5000},
	{Jumper, "Jumping Jack", "Jump 100 times", 100},
	{Ducker, "Limbo Master", "Duck 50 times", 50},
	{Survivor, "Survivor", "Avoid 100 obstacles", 100},
	{Combo10, "Combo King", "Achieve a 10x combo", 10},
	{Combo25, "Combo Master", "Achieve a 25x combo", 25},
	{SpeedDemon, "Speed Demon", "Reach maximum game speed", 1},
	{NightRunner, "Night Runner", "Play during night mode", 1},
	{PowerUser, "Power User", "Collect 10 power-ups in one run", 10},
	{PerfectPattern, "Pattern Perfect", "Complete an obstacle pattern", 1},
	{Marathoner, "Marathoner", "Play for 10 minutes total", 600},
	{HardcoreGamer, "Hardcore Gamer", "Complete a game on Hard difficulty", 1},
	{InsanePlayer, "Insane Player", "Score 1000 on Insane difficulty", 1000},
}

// Lookup returns the definition for id.
func Lookup(id string) (Definition, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
