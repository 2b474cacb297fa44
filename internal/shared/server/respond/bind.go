package respond

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const defaultPageLimit = 20

// PageQuery is the limit/offset pair accepted by list endpoints.
type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=50"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// BindPage reads limit and offset from the query string. Out of range or
// non-numeric values get a 400 and ok is false.
func BindPage(c *gin.Context) (q PageQuery, ok bool) {
	if err := c.ShouldBindQuery(&q); err != nil {
		Validation(c, "invalid paging parameters", BindingDetails(err))
		return PageQuery{}, false
	}
	if q.Limit == 0 {
		q.Limit = defaultPageLimit
	}
	return q, true
}

// BindingDetails lists the failing fields of a validator error, or nil for
// malformed input.
func BindingDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, gin.H{"field": fe.Field(), "rule": fe.Tag()})
	}
	return out
}
