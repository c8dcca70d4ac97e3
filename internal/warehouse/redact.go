package warehouse

import "strings"

// RedactLiterals replaces every single-quoted string literal with '***' so
// persisted query history never retains literal values. Doubled quotes inside
// a literal ('O''Brien') are treated as part of the same literal.
func RedactLiterals(sql string) string {
	var out strings.Builder
	out.Grow(len(sql))

	for i := 0; i < len(sql); {
		if sql[i] != '\'' {
			out.WriteByte(sql[i])
			i++
			continue
		}

		// Consume the literal, honoring '' escapes.
		j := i + 1
		for j < len(sql) {
			if sql[j] == '\'' {
				if j+1 < len(sql) && sql[j+1] == '\'' {
					j += 2
					continue
				}
				j++
				break
			}
			j++
		}
		out.WriteString("'***'")
		i = j
	}

	return out.String()
}
