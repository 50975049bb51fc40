package plume

// MapAttribute is the human-readable tag of a surface attribute shown to
// users. Static metadata lives in plain lookup tables below.
type MapAttribute string

const (
	AttrMigrationTimeGas       MapAttribute = "Migration time (gas)"
	AttrMigrationTimeDissolved MapAttribute = "Migration time (dissolved)"
	AttrMaxGas                 MapAttribute = "Maximum gas"
	AttrMaxDissolved           MapAttribute = "Maximum dissolved"
	AttrMaxTrapped             MapAttribute = "Maximum trapped gas"
	AttrPlumeGas               MapAttribute = "Plume (gas_phase)"
	AttrPlumeDissolved         MapAttribute = "Plume (dissolved_phase)"
	AttrPlumeTrapped           MapAttribute = "Plume (trapped_phase)"
	AttrMass                   MapAttribute = "Mass"
	AttrMassDissolved          MapAttribute = "Dissolved mass"
	AttrMassFree               MapAttribute = "Free gas mass"
	AttrMassFreeGas            MapAttribute = "Free gas phase mass"
	AttrMassTrappedGas         MapAttribute = "Trapped gas phase mass"
)

// AttributeInfo groups the static metadata of a map attribute: its phase
// group, the map type driving plot behavior, and the file naming convention
// used by surface exports (empty when the attribute is derived and has no
// file of its own).
type AttributeInfo struct {
	Group      string
	MapType    string
	FileNaming string
}

var attributeTable = map[MapAttribute]AttributeInfo{
	AttrMigrationTimeGas:       {Group: "gas_phase", MapType: "MIGRATION_TIME", FileNaming: "migrationtime_gas_phase"},
	AttrMigrationTimeDissolved: {Group: "dissolved_phase", MapType: "MIGRATION_TIME", FileNaming: "migrationtime_dissolved_phase"},
	AttrMaxGas:                 {Group: "gas_phase", MapType: "MAX", FileNaming: "max_gas_phase"},
	AttrMaxDissolved:           {Group: "dissolved_phase", MapType: "MAX", FileNaming: "max_dissolved_phase"},
	AttrMaxTrapped:             {Group: "trapped_phase", MapType: "MAX", FileNaming: "max_trapped_phase"},
	AttrPlumeGas:               {Group: "gas_phase", MapType: "PLUME"},
	AttrPlumeDissolved:         {Group: "dissolved_phase", MapType: "PLUME"},
	AttrPlumeTrapped:           {Group: "trapped_phase", MapType: "PLUME"},
	AttrMass:                   {Group: "CO2 MASS", MapType: "MASS", FileNaming: "co2_mass_total"},
	AttrMassDissolved:          {Group: "CO2 MASS", MapType: "MASS", FileNaming: "co2_mass_dissolved_phase"},
	AttrMassFree:               {Group: "CO2 MASS", MapType: "MASS", FileNaming: "co2_mass_gas_phase"},
	AttrMassFreeGas:            {Group: "CO2 MASS", MapType: "MASS", FileNaming: "co2_mass_free_gas_phase"},
	AttrMassTrappedGas:         {Group: "CO2 MASS", MapType: "MASS", FileNaming: "co2_mass_trapped_gas_phase"},
}

// Info returns the static metadata for an attribute.
func (a MapAttribute) Info() (AttributeInfo, bool) {
	info, ok := attributeTable[a]
	return info, ok
}

// IsPlume reports whether the attribute is a derived plume-presence
// attribute, the kind this package contours.
func (a MapAttribute) IsPlume() bool {
	info, ok := attributeTable[a]
	return ok && info.MapType == "PLUME"
}

// AttributeForFileName resolves a surface file naming tag back to its map
// attribute, used when discovering exported surfaces on disk.
func AttributeForFileName(naming string) (MapAttribute, bool) {
	for attr, info := range attributeTable {
		if info.FileNaming != "" && info.FileNaming == naming {
			return attr, true
		}
	}
	return "", false
}

// PlumeAttributeFor returns the derived plume attribute for a MAX-type
// attribute's phase group, mirroring how plume requests are generated from
// available maximum maps.
func PlumeAttributeFor(a MapAttribute) (MapAttribute, bool) {
	info, ok := attributeTable[a]
	if !ok || info.MapType != "MAX" {
		return "", false
	}
	plume := MapAttribute("Plume (" + info.Group + ")")
	if _, ok := attributeTable[plume]; !ok {
		return "", false
	}
	return plume, true
}
