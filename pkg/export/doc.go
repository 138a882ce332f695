// Package export renders a storage unit into the XML import document and
// hands the result to a Sink. The element layout is fixed by the importer
// that consumes data.xml:
//
//	Import
//	  storageUnits/storageUnit
//	  compartments/Compartment*
//	  sensorUnits/sensorUnit
//	  sensorAreas/SensorArea*
//
// Sensor area external ids and sensor pin ids are recomputed from the area
// position when the document is built, whatever the stored values are. Text
// is written unescaped unless WithEscaping or WithSanitizer is set.
package export
