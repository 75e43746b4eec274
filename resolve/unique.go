package resolve

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// carrierLocal is the name generated methods store their carrier in
const carrierLocal = "params"

// AssignUniqueIDs numbers methods that share a name, in order: the first
// `show` keeps its name, the next ones become `show1`, `show2`, and so on.
// It also names the carrier of each method with arguments.
func AssignUniqueIDs(methods []*Method) {
	counts := make(map[string]int)
	for _, method := range methods {
		count := counts[method.Name]
		if count == 0 {
			method.UniqueID = method.Name
		} else {
			method.UniqueID = method.Name + strconv.Itoa(count)
		}
		counts[method.Name] = count + 1

		method.CarrierName = ""
		if len(method.Arguments) > 0 {
			method.CarrierName = CarrierName(method.UniqueID)
		}
		method.CarrierLocal, method.ArgumentCollision = carrierLocalFor(method.Arguments)
	}
}

// CarrierName is the name of the record holding the arguments of a command:
// the unique id with its first letter upper-cased, followed by "Params"
func CarrierName(uniqueID string) string {
	first, size := utf8.DecodeRuneInString(uniqueID)
	return string(unicode.ToUpper(first)) + uniqueID[size:] + "Params"
}

// carrierLocalFor picks the local name for a carrier. An argument named
// "params" at index i renames the local to "params<i>"; later collisions are
// checked against the renamed local.
func carrierLocalFor(arguments []Argument) (string, bool) {
	local := carrierLocal
	collision := false
	for i, arg := range arguments {
		if arg.Name == local {
			local = carrierLocal + strconv.Itoa(i)
			collision = true
		}
	}
	return local, collision
}

// ArgumentNames joins the argument names with ", "
func ArgumentNames(arguments []Argument) string {
	names := make([]string, len(arguments))
	for i, arg := range arguments {
		names[i] = arg.Name
	}
	return strings.Join(names, ", ")
}
