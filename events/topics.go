package events

// Package-level topic definitions, one per event kind. Managers connect
// these to a live Bus via .On(bus); see events/topic.go's TopicDef.
var (
	TurnStartedTopic        = DefineTopic[TurnStartedEvent](KindTurnStarted)
	TurnEndedTopic          = DefineTopic[TurnEndedEvent](KindTurnEnded)
	UnitMovedTopic          = DefineTopic[UnitMovedEvent](KindUnitMoved)
	UnitAttackedTopic       = DefineTopic[UnitAttackedEvent](KindUnitAttacked)
	UnitTookDamageTopic     = DefineTopic[UnitTookDamageEvent](KindUnitTookDamage)
	UnitDefeatedTopic       = DefineTopic[UnitDefeatedEvent](KindUnitDefeated)
	BattlePhaseChangedTopic = DefineTopic[BattlePhaseChangedEvent](KindBattlePhaseChanged)
	ActionSelectedTopic     = DefineTopic[ActionSelectedEvent](KindActionSelected)
	ActionExecutedTopic     = DefineTopic[ActionExecutedEvent](KindActionExecuted)
	MovementCompletedTopic  = DefineTopic[MovementCompletedEvent](KindMovementCompleted)
	InterruptPreparedTopic  = DefineTopic[InterruptPreparedEvent](KindInterruptPrepared)
	InterruptTriggeredTopic = DefineTopic[InterruptTriggeredEvent](KindInterruptTriggered)
	ObjectiveCompletedTopic = DefineTopic[ObjectiveCompletedEvent](KindObjectiveCompleted)
	ObjectiveFailedTopic    = DefineTopic[ObjectiveFailedEvent](KindObjectiveFailed)
	ScenarioLoadedTopic     = DefineTopic[ScenarioLoadedEvent](KindScenarioLoaded)
	LogMessageTopic         = DefineTopic[LogMessageEvent](KindLogMessage)
	HazardTriggeredTopic    = DefineTopic[HazardTriggeredEvent](KindHazardTriggered)
	MoraleChangedTopic      = DefineTopic[MoraleChangedEvent](KindMoraleChanged)
	UnitRalliedTopic        = DefineTopic[UnitRalliedEvent](KindUnitRallied)
	UnitRoutedTopic         = DefineTopic[UnitRoutedEvent](KindUnitRouted)
)
