package model

// Participant is a connected human player as seen by spawn placement.
type Participant struct {
	ID        uint32
	Name      string
	Location  Location
	Flying    bool // noclip/flying or mid-teleport
	Concealed bool // hidden by an external vanish service
	Sleeping  bool
}

// Victim describes a targeting candidate for the combat policy.
type Victim struct {
	Type        string    // prefab/short name, matched against the ignore list
	IsPlayer    bool      // authenticated, human-controlled
	NightZombie bool      // one of ours
	Kind        AgentKind // meaningful only for NightZombie victims
	Sleeping    bool
}
