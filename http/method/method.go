package method

type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
	COPY
	LOCK
	MKCOL
	MOVE
	PROPFIND
	PROPPATCH
	SEARCH
	UNLOCK
	BIND
	REBIND
	UNBIND
	ACL
	REPORT
	MKACTIVITY
	CHECKOUT
	MERGE
	MSEARCH
	NOTIFY
	SUBSCRIBE
	UNSUBSCRIBE
	PURGE
	MKCALENDAR
	LINK
	UNLINK
	BATCH

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// List contains all the supported HTTP methods. They are sorted by their integer value, however
// Unknown method is not included. So in order to index the List, you must subtract 1 first.
var List = []Method{
	GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH, COPY, LOCK, MKCOL, MOVE,
	PROPFIND, PROPPATCH, SEARCH, UNLOCK, BIND, REBIND, UNBIND, ACL, REPORT, MKACTIVITY,
	CHECKOUT, MERGE, MSEARCH, NOTIFY, SUBSCRIBE, UNSUBSCRIBE, PURGE, MKCALENDAR, LINK,
	UNLINK, BATCH,
}

var names = [...]string{
	Unknown:     "Unknown",
	GET:         "GET",
	HEAD:        "HEAD",
	POST:        "POST",
	PUT:         "PUT",
	DELETE:      "DELETE",
	CONNECT:     "CONNECT",
	OPTIONS:     "OPTIONS",
	TRACE:       "TRACE",
	PATCH:       "PATCH",
	COPY:        "COPY",
	LOCK:        "LOCK",
	MKCOL:       "MKCOL",
	MOVE:        "MOVE",
	PROPFIND:    "PROPFIND",
	PROPPATCH:   "PROPPATCH",
	SEARCH:      "SEARCH",
	UNLOCK:      "UNLOCK",
	BIND:        "BIND",
	REBIND:      "REBIND",
	UNBIND:      "UNBIND",
	ACL:         "ACL",
	REPORT:      "REPORT",
	MKACTIVITY:  "MKACTIVITY",
	CHECKOUT:    "CHECKOUT",
	MERGE:       "MERGE",
	MSEARCH:     "M-SEARCH",
	NOTIFY:      "NOTIFY",
	SUBSCRIBE:   "SUBSCRIBE",
	UNSUBSCRIBE: "UNSUBSCRIBE",
	PURGE:       "PURGE",
	MKCALENDAR:  "MKCALENDAR",
	LINK:        "LINK",
	UNLINK:      "UNLINK",
	BATCH:       "BATCH",
}

// String returns the canonical name of the method as it appears on the wire.
func (m Method) String() string {
	if int(m) >= len(names) {
		return names[Unknown]
	}

	return names[m]
}

// byFirstLetter buckets methods by their first character, which keeps Parse down to a
// couple of string comparisons.
var byFirstLetter = func() (lut [256][]Method) {
	for _, m := range List {
		name := m.String()
		lut[name[0]] = append(lut[name[0]], m)
	}

	return lut
}()

// Parse returns the method by its exact (case-sensitive) name, or Unknown.
func Parse(str string) Method {
	if len(str) == 0 {
		return Unknown
	}

	for _, m := range byFirstLetter[str[0]] {
		if m.String() == str {
			return m
		}
	}

	return Unknown
}

// candidates is the initial guess made by the first letter of a request line. Every other
// method sharing the letter is reached from the guess via Disambiguate.
var candidates = [256]Method{
	'A': ACL,
	'B': BIND,
	'C': CONNECT,
	'D': DELETE,
	'G': GET,
	'H': HEAD,
	'L': LOCK,
	'M': MKCOL,
	'N': NOTIFY,
	'O': OPTIONS,
	'P': POST,
	'R': REPORT,
	'S': SUBSCRIBE,
	'T': TRACE,
	'U': UNLOCK,
}

// Candidate returns the method the request line most likely carries, judging by its first
// character. Unknown means no method starts with it.
func Candidate(c byte) Method {
	return candidates[c]
}

type step struct {
	from  Method
	index int
	char  byte
}

var transitions = map[step]Method{
	{CONNECT, 1, 'H'}:   CHECKOUT,
	{CONNECT, 2, 'P'}:   COPY,
	{MKCOL, 1, 'O'}:     MOVE,
	{MKCOL, 1, 'E'}:     MERGE,
	{MKCOL, 1, '-'}:     MSEARCH,
	{MKCOL, 2, 'A'}:     MKACTIVITY,
	{MKCOL, 3, 'A'}:     MKCALENDAR,
	{SUBSCRIBE, 1, 'E'}: SEARCH,
	{REPORT, 2, 'B'}:    REBIND,
	{POST, 1, 'R'}:      PROPFIND,
	{POST, 1, 'U'}:      PUT,
	{POST, 1, 'A'}:      PATCH,
	{PROPFIND, 4, 'P'}:  PROPPATCH,
	{PUT, 2, 'R'}:       PURGE,
	{LOCK, 1, 'I'}:      LINK,
	{UNLOCK, 2, 'S'}:    UNSUBSCRIBE,
	{UNLOCK, 2, 'B'}:    UNBIND,
	{UNLOCK, 3, 'I'}:    UNLINK,
	{BIND, 1, 'A'}:      BATCH,
}

// Disambiguate is called when the char at the index of a request line doesn't match the
// current guess. It returns the method sharing the prefix up to the index and continuing
// with the char, or Unknown if there's none.
func Disambiguate(m Method, index int, c byte) Method {
	return transitions[step{m, index, c}]
}

// IsSafe reports whether the method is defined as safe, i.e. read-only.
func (m Method) IsSafe() bool {
	switch m {
	case GET, HEAD, OPTIONS, PROPFIND, REPORT, BATCH:
		return true
	default:
		return false
	}
}

// IsIdempotent reports whether multiple identical requests have the same effect as a
// single one.
func (m Method) IsIdempotent() bool {
	switch m {
	case GET, HEAD, PUT, DELETE, OPTIONS, PROPFIND, REPORT, PROPPATCH, MKCOL, MKCALENDAR, BATCH:
		return true
	default:
		return false
	}
}
