package mongo

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// Element names of the persisted employee document.
const (
	fieldID            = "_id"
	fieldName          = "Name"
	fieldDepartment    = "Department"
	fieldEmail         = "Email"
	fieldDateOfJoining = "DateOfJoining"
	fieldJobTitle      = "JobTitle"
	fieldSalary        = "Salary"
	fieldIsActive      = "IsActive"
)

var elementNames = map[domain.Field]string{
	domain.FieldDepartment: fieldDepartment,
	domain.FieldIsActive:   fieldIsActive,
	domain.FieldSalary:     fieldSalary,
	domain.FieldName:       fieldName,
}

// predicateFilter translates a typed predicate into a BSON query document.
func predicateFilter(p domain.Predicate) (bson.M, error) {
	elem, ok := elementNames[p.Field]
	if !ok {
		return nil, fmt.Errorf("unsupported field %q", p.Field)
	}

	switch p.Op {
	case domain.CompareEq:
		return bson.M{elem: p.Value}, nil
	case domain.CompareGt:
		return bson.M{elem: bson.M{"$gt": p.Value}}, nil
	case domain.CompareLte:
		return bson.M{elem: bson.M{"$lte": p.Value}}, nil
	case domain.CompareContainsCI:
		s, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q: substring match needs a string, got %T", p.Field, p.Value)
		}
		return bson.M{elem: primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}}, nil
	default:
		return nil, fmt.Errorf("unsupported comparator %q", p.Op)
	}
}

// idFilter matches a document by its hex id. ok is false when id cannot be an
// ObjectID, in which case no document can match.
func idFilter(id string) (filter bson.M, ok bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{fieldID: oid}, true
}
