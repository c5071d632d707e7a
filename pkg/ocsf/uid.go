package ocsf

// Well-known uid arithmetic from the OCSF event taxonomy. A type_uid fuses a
// class uid with an activity id; services accept either form when resolving
// a class name.

// ComputeTypeUID returns the OCSF type_uid for a class and activity:
// class_uid * 100 + activity_id.
func ComputeTypeUID(classUID, activityID int) int {
	return classUID*100 + activityID
}

// SplitTypeUID breaks a type_uid back into class uid and activity id. Values
// below 100000 are bare class uids and come back unchanged with activity 0.
func SplitTypeUID(typeUID int) (classUID, activityID int) {
	if typeUID < 100000 {
		return typeUID, 0
	}
	return typeUID / 100, typeUID % 100
}
