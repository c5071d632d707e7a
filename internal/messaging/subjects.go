package messaging

// Subjects for the schema service message bus, following the TelHawk
// {domain}.{action}.{resource} pattern.
const (
	// SubjectSchemaCompile carries schema compile requests; replies go to
	// the request's reply subject.
	SubjectSchemaCompile = "schema.compile.request"

	// SubjectSchemaLookupUID carries class UID lookup requests.
	SubjectSchemaLookupUID = "schema.lookup.uid"
)

// QueueSchemaWorkers is the queue group schema workers share so each
// request is processed by exactly one instance.
const QueueSchemaWorkers = "schema-workers"
