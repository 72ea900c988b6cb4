package pet

// EventKind classifies something observable that happened to the pet.
type EventKind uint8

const (
	EventActionPerformed EventKind = iota
	EventActionRejected
	EventMoodChanged
	EventDominantChanged
	EventCareerUnlocked
	EventWorkShift
	EventPromoted
	EventItemCrafted
	EventItemForaged
	EventItemConsumed
	EventRecipeDiscovered
	EventDebrisSpawned
	EventDebrisCleaned
	EventRelationshipChanged
	EventQuestStarted
	EventQuestAdvanced
	EventQuestCompleted
	EventDailyQuestOffered
	EventDailyQuestCompleted
	EventRoomUnlocked
	EventLegacyReady
	EventDayStarted
	EventExpeditionChoice
	eventKindCount
)

var eventKindNames = [...]string{
	"action_performed",
	"action_rejected",
	"mood_changed",
	"dominant_changed",
	"career_unlocked",
	"work_shift",
	"promoted",
	"item_crafted",
	"item_foraged",
	"item_consumed",
	"recipe_discovered",
	"debris_spawned",
	"debris_cleaned",
	"relationship_changed",
	"quest_started",
	"quest_advanced",
	"quest_completed",
	"daily_quest_offered",
	"daily_quest_completed",
	"room_unlocked",
	"legacy_ready",
	"day_started",
	"expedition_choice",
}

// String returns the snake_case name of the kind.
func (k EventKind) String() string {
	if k < eventKindCount {
		return eventKindNames[k]
	}
	return "unknown"
}

// EventKinds returns every kind in declaration order.
func EventKinds() []EventKind {
	out := make([]EventKind, eventKindCount)
	for i := range out {
		out[i] = EventKind(i)
	}
	return out
}

// Event is emitted to the sink after a state change.
type Event struct {
	Kind    EventKind
	Day     int
	Subject string  // Action, item, NPC, career or mood involved
	Value   float64 // Kind-specific magnitude
}

// EventSink receives pet events. Implementations must not call back into the pet.
type EventSink interface {
	Emit(Event)
}

type discardSink struct{}

func (discardSink) Emit(Event) {}

func (p *Nadagotchi) emit(kind EventKind, subject string, value float64) {
	p.sink.Emit(Event{Kind: kind, Day: p.day, Subject: subject, Value: value})
}
