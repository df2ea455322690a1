package vehicles

import (
	"github.com/labstack/echo/v4"

	"vehicle-app/internal/store"
)

// ContainsFilter query 參數 param 不為空時，對 column 做不分大小寫的包含比對
func ContainsFilter(param, column string) FilterParser {
	return func(c echo.Context) ([]store.Filter, error) {
		if v := c.QueryParam(param); v != "" {
			return []store.Filter{store.Contains(column, v)}, nil
		}
		return nil, nil
	}
}

// IDFilter 依 id 精確比對，0 或未提供表示不過濾
func IDFilter(param, column string) FilterParser {
	return func(c echo.Context) ([]store.Filter, error) {
		id, err := queryInt(c, param, 0)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, nil
		}
		return []store.Filter{store.Equals(column, id)}, nil
	}
}

// AllFilters 合併多個 parser 的條件 (AND)
func AllFilters(parsers ...FilterParser) FilterParser {
	return func(c echo.Context) ([]store.Filter, error) {
		var filters []store.Filter
		for _, p := range parsers {
			f, err := p(c)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f...)
		}
		return filters, nil
	}
}
