package calc

// parser is a recursive descent evaluator over a token slice.
// The cursor only moves forward; each token is consumed once.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// parseAdditive handles left-associative + and -.
func (p *parser) parseAdditive() (float64, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return 0, err
	}

	for !p.atEnd() && (p.peek().isOperator('+') || p.peek().isOperator('-')) {
		op := p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return 0, err
		}
		if op.isOperator('+') {
			left += right
		} else {
			left -= right
		}
	}

	return left, nil
}

// parseMultiplicative handles left-associative * and /.
func (p *parser) parseMultiplicative() (float64, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}

	for !p.atEnd() && (p.peek().isOperator('*') || p.peek().isOperator('/')) {
		op := p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return 0, err
		}
		if op.isOperator('*') {
			left *= right
			continue
		}
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		left /= right
	}

	return left, nil
}

// parsePrimary handles unary signs, parenthesized groups and literals.
// A missing closing parenthesis is tolerated.
func (p *parser) parsePrimary() (float64, error) {
	if p.atEnd() {
		return 0, ErrUnexpectedEnd
	}

	tok := p.peek()
	switch {
	case tok.isOperator('-'):
		p.next()
		v, err := p.parsePrimary()
		if err != nil {
			return 0, err
		}
		return -v, nil

	case tok.isOperator('+'):
		p.next()
		return p.parsePrimary()

	case tok.Type == LPAREN:
		p.next()
		v, err := p.parseAdditive()
		if err != nil {
			return 0, err
		}
		if !p.atEnd() && p.peek().Type == RPAREN {
			p.next()
		}
		return v, nil

	case tok.Type == NUMBER:
		p.next()
		return tok.Value, nil
	}

	return 0, &UnexpectedTokenError{Token: tok}
}
